package kafka

// Config содержит конфигурацию для подключения к Kafka
type Config struct {
	// Enabled включает публикацию доменных событий; при false publisher не создаётся
	Enabled bool `env:"KAFKA_ENABLED" envDefault:"false"`
	// Brokers список брокеров Kafka:
	//   - локальная разработка (go run): localhost:19092
	//   - запуск в Docker: kafka:9092
	// Можно указать несколько брокеров через запятую: "broker1:9092,broker2:9092"
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	// ProductRegisteredTopic топик событий регистрации товара
	ProductRegisteredTopic string `env:"KAFKA_PRODUCT_REGISTERED_TOPIC" envDefault:"product.registered"`
	// GroupID consumer group для читателей (events-tail)
	GroupID string `env:"KAFKA_GROUP_ID" envDefault:"stockbook-events-tail"`
}

// DefaultConfig возвращает конфигурацию с дефолтными значениями для локальной разработки.
// Актуальные значения приходят из переменных окружения через LoadEnv.
func DefaultConfig() Config {
	return Config{
		Brokers:                []string{"localhost:19092"},
		ProductRegisteredTopic: "product.registered",
		GroupID:                "stockbook-events-tail",
	}
}
