package cron

import (
	"net/http"
	"time"

	"urbania/config"
	"urbania/utils"

	"go.uber.org/zap"
)

const (
	keepAliveStartupDelay = 30 * time.Second
	keepAliveInterval     = 14 * time.Minute
)

// StartKeepAlive pings the configured public URL on an interval so free-tier
// hosts do not idle the instance out. Disabled when KEEP_ALIVE_URL is empty.
func StartKeepAlive() {
	url := config.AppConfig.KeepAliveURL
	if url == "" {
		return
	}

	logger := utils.GetLogger()
	client := &http.Client{Timeout: 30 * time.Second}

	go func() {
		time.Sleep(keepAliveStartupDelay)
		ping(client, url, logger)

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()
		for range ticker.C {
			ping(client, url, logger)
		}
	}()

	logger.Info("Keep-alive loop started", zap.String("url", url))
}

func ping(client *http.Client, url string, logger *zap.Logger) {
	resp, err := client.Get(url)
	if err != nil {
		logger.Warn("Keep-alive ping failed", zap.Error(err))
		return
	}
	resp.Body.Close()
	logger.Debug("Keep-alive ping", zap.Int("status", resp.StatusCode))
}
