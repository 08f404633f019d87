package app

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// apiReadHeaderTimeout 读取请求头的上限，慢客户端超时后连接被回收
const apiReadHeaderTimeout = 10 * time.Second

// HTTPService 将 API 入口封装为可托管的服务
type HTTPService struct {
	server *http.Server
}

// NewHTTPService 创建监听 addr 的 HTTP 服务
func NewHTTPService(addr string, handler http.Handler) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: apiReadHeaderTimeout,
		},
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "http-api"
}

// Start 阻塞监听，正常停机不视为错误
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop 优雅停机，等待在途请求完成
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
