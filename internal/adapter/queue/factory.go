package queue

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/pkg/config"
)

// New builds the MessageQueue named by config. NATS is the default
// driver; RabbitMQ is available for deployments that already run it.
func New(cfg config.QueueConfig, log *zap.Logger) (MessageQueue, error) {
	switch cfg.Driver {
	case "", "nats":
		return NewNATSQueue(cfg.NATSURL, log)
	case "rabbitmq":
		return NewRabbitMQQueue(cfg.RabbitMQURL, log)
	default:
		return nil, fmt.Errorf("unknown queue driver: %s", cfg.Driver)
	}
}
