package config

import (
	"os"
	"sync"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
)

var (
	config *Config
	once   sync.Once
)

type Auth struct {
	SecretKey    string
	AccessExpire int64
}

type Mongo struct {
	URL string
	DB  string
}

type COS struct {
	BucketURL string
	CDN       string
	SecretID  string
	SecretKey string
}

// Moderation 外发消息敏感词配置
type Moderation struct {
	Words []string `json:",optional"`
}

type Config struct {
	service.ServiceConf
	ListenOn   string
	Auth       Auth
	Cache      cache.CacheConf
	Mongo      Mongo
	COS        COS
	Moderation Moderation
}

func NewConfig() (*Config, error) {
	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "etc/config.yaml"
	}
	err := conf.Load(path, c)
	if err != nil {
		return nil, err
	}
	err = c.SetUp()
	if err != nil {
		return nil, err
	}
	config = c
	return config, nil
}

func GetConfig() *Config {
	return config
}
