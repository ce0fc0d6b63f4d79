package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type credential struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type auth struct {
	Credentials []credential `mapstructure:"credentials"`
}

// catalog selects and configures the catalog store backend. Backend is
// "leveldb" or "postgres".
type catalog struct {
	Backend      string `mapstructure:"backend"`
	LevelDBPath  string `mapstructure:"leveldb_path"`
	SQLDB        string `mapstructure:"sql_db"`
	ProductsPath string `mapstructure:"products_path"`
}

type topics struct {
	CatalogEvents string `mapstructure:"catalog_events"`
}

// broker configures the catalog change-event stream. An empty seed
// list disables producing entirely.
type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Catalog        catalog    `mapstructure:"catalog"`
	Broker         broker     `mapstructure:"broker"`
	Auth           auth       `mapstructure:"auth"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func (c Config) EventsEnabled() bool {
	return len(c.Broker.SeedBrokers) > 0
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Catalog:
	Backend=%q
	LevelDBPath=%q
	SQLDB=%q
	ProductsPath=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CatalogEvents=%q

	Auth:
	Credentials=%d entries

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Catalog.Backend,
		c.Catalog.LevelDBPath,
		c.Catalog.SQLDB,
		c.Catalog.ProductsPath,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CatalogEvents,
		len(c.Auth.Credentials),
	)
}
