package testtool

import (
	"net/http"
	_ "net/http/pprof" // 匯入後會自動註冊 pprof endpoint

	"go.uber.org/zap"

	"short_video_service/pkg/config"
	"short_video_service/pkg/logger"
)

// PprofAddr pprof 只開在本機
const PprofAddr = "127.0.0.1:6060"

// StartPprof 非 production 環境才啟動 pprof 監控伺服器
//
//	curl http://localhost:6060/debug/pprof/
//	go tool pprof http://localhost:6060/debug/pprof/profile?seconds=30
//	go tool pprof http://localhost:6060/debug/pprof/heap
func StartPprof() bool {
	if config.IsProduction() {
		logger.Log.Info("Production environment detected, pprof is disabled.")
		return false
	}

	go func() {
		logger.Log.Info("Starting pprof server", zap.String("addr", PprofAddr))
		if err := http.ListenAndServe(PprofAddr, nil); err != nil {
			logger.Log.Error("pprof server failed", zap.Error(err))
		}
	}()
	return true
}
