package main

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sarchlab/distill/catalog"
)

const (
	configBaseName = "distill"
	envPrefix      = "DISTILL"
	envFile        = ".env"

	catalogKey = "catalog"
	recordKey  = "record"
	ticksKey   = "ticks"

	monitorKey     = "monitor.enabled"
	monitorPortKey = "monitor.port"
	monitorOpenKey = "monitor.open"

	tuningKey = "tuning"

	logFilenameKey   = "log.filename"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
)

var configFile string

var tuningFields = []string{
	"process_interval",
	"tank_capacity",
	"transfer_rate",
	"tick_limit",
}

func initConfig() {
	if err := loadEnvFile(envFile); err != nil {
		log.Printf("cannot load %s: %v", envFile, err)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(configBaseName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	for _, field := range tuningFields {
		_ = viper.BindEnv(tuningKey + "." + field)
	}

	viper.SetDefault(catalogKey, ".")
	viper.SetDefault(monitorPortKey, 0)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, true)

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && configFile != "" {
			log.Fatalf("cannot read config %s: %v", configFile, err)
		}
	}

	setupLogging()
}

// loadEnvFile reads environment variables from path if the file exists.
// Variables already set in the environment win.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func setupLogging() {
	filename := viper.GetString(logFilenameKey)
	if filename == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		log.Printf("cannot create log directory: %v", err)
		return
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	log.SetOutput(io.MultiWriter(os.Stderr, logWriter))
}

// bindFlag lets a config file or DISTILL_* variable feed a flag.
func bindFlag(flag *pflag.Flag, key string) {
	if flag == nil {
		log.Panicf("flag for config key %q not found", key)
	}

	if err := viper.BindPFlag(key, flag); err != nil {
		log.Panic(err)
	}
}

// tuningFor starts from the catalog's tuning and applies the overrides set in
// the config file or environment.
func tuningFor(cat *catalog.Catalog) (catalog.Tuning, error) {
	tuning := cat.Tuning

	if viper.IsSet(tuningKey) {
		if err := viper.UnmarshalKey(tuningKey, &tuning); err != nil {
			return tuning, err
		}
	}

	targets := []*int{
		&tuning.ProcessInterval,
		&tuning.TankCapacity,
		&tuning.TransferRate,
		&tuning.TickLimit,
	}
	for i, field := range tuningFields {
		if key := tuningKey + "." + field; viper.IsSet(key) {
			*targets[i] = viper.GetInt(key)
		}
	}

	return tuning, tuning.Validate()
}
