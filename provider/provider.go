package provider

import (
	"github.com/chathub-im/chathub-core-api/biz/application/service"
	"github.com/chathub-im/chathub-core-api/biz/domain/gateway"
	"github.com/chathub-im/chathub-core-api/biz/infra/config"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/contact"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/conversation"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/message"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/organization"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/user"
	"github.com/chathub-im/chathub-core-api/biz/infra/storage"
	"github.com/chathub-im/chathub-core-api/pkg/ac"
	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
	// 敏感词自动机在进程启动时构建一次
	if len(provider.Config.Moderation.Words) > 0 {
		if err = ac.InitAc(provider.Config.Moderation.Words); err != nil {
			panic(err)
		}
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config        *config.Config
	AuthService   service.IAuthService
	ChatService   service.IChatService
	AttachService service.IAttachService
	Gateway       *gateway.Gateway
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.AuthServiceSet,
	service.ChatServiceSet,
	service.AttachServiceSet,
)

var DomainSet = wire.NewSet(
	gateway.GatewaySet,
)

var InfraSet = wire.NewSet(
	config.NewConfig,
	storage.NewCOS,
	user.NewUserMongoMapper,
	organization.NewOrganizationMongoMapper,
	contact.NewContactMongoMapper,
	conversation.NewConversationMongoMapper,
	message.NewMessageMongoMapper,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	DomainSet,
	InfraSet,
)
