package httpx

import (
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	cli  *Client
	once sync.Once
)

// Client 全局单例http客户端, transport带otel埋点
type Client struct {
	Client *http.Client
}

func GetHttpClient() *Client {
	once.Do(func() {
		cli = &Client{
			Client: &http.Client{
				Transport: otelhttp.NewTransport(http.DefaultTransport),
				Timeout:   30 * time.Second,
			},
		}
	})
	return cli
}
