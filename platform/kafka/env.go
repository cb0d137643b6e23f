package kafka

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// LoadEnv загружает конфигурацию из переменных окружения поверх значений cfg
// Использует пакет caarlos0/env/v10 для парсинга env-тегов
func LoadEnv(cfg *Config) error {
	return env.Parse(cfg)
}

// Validate проверяет конфигурацию; без Enabled проверять нечего
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED=true")
	}
	if c.ProductRegisteredTopic == "" {
		return fmt.Errorf("KAFKA_PRODUCT_REGISTERED_TOPIC is required when KAFKA_ENABLED=true")
	}
	return nil
}
