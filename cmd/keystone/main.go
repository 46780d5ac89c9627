package main

import (
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/glotchimo/keystone/internal/bot"
	"github.com/joho/godotenv"
)

type Conf struct {
	Debug      bool   `env:"DEBUG"`
	Token      string `env:"BOT_TOKEN,required"`
	Intents    int    `env:"BOT_INTENTS" envDefault:"37377"`
	ShardID    int    `env:"SHARD_ID" envDefault:"0"`
	ShardCount int    `env:"SHARD_COUNT" envDefault:"1"`

	Prefix       string `env:"COMMAND_PREFIX" envDefault:"!"`
	Playing      string `env:"PROFILE_PLAYING" envDefault:"!명령어"`
	HomeGuildID  string `env:"HOME_GUILD_ID"`
	DefaultRealm string `env:"DEFAULT_REALM" envDefault:"hellscream"`
	DefaultGuild string `env:"DEFAULT_GUILD"`
	Region       string `env:"REGION" envDefault:"kr"`
	Locale       string `env:"LOCALE" envDefault:"ko_KR"`

	BlizzardClientID     string        `env:"BLIZZARD_CLIENT_ID,required"`
	BlizzardClientSecret string        `env:"BLIZZARD_CLIENT_SECRET,required"`
	BlizzardTokenURL     string        `env:"BLIZZARD_TOKEN_URL" envDefault:"https://oauth.battle.net/token"`
	BlizzardAPIURL       string        `env:"BLIZZARD_API_URL" envDefault:"https://kr.api.blizzard.com"`
	RaiderAPIURL         string        `env:"RAIDER_API_URL" envDefault:"https://raider.io/api/v1"`
	HTTPTimeout          time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	DatabaseURL string        `env:"DATABASE_URL"`
	CacheURL    string        `env:"REDIS_URL"`
	StaticTTL   time.Duration `env:"STATIC_TTL" envDefault:"10m"`
	RateLimit   int           `env:"RATE_LIMIT" envDefault:"10"`
	RateWindow  time.Duration `env:"RATE_WINDOW" envDefault:"60s"`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	var conf Conf
	if err := env.Parse(&conf); err != nil {
		panic(err)
	}

	bot, err := bot.NewBot(bot.Options{
		Debug:                conf.Debug,
		Token:                conf.Token,
		Intents:              conf.Intents,
		ShardID:              conf.ShardID,
		ShardCount:           conf.ShardCount,
		Prefix:               conf.Prefix,
		Playing:              conf.Playing,
		HomeGuildID:          conf.HomeGuildID,
		DatabaseURL:          conf.DatabaseURL,
		CacheURL:             conf.CacheURL,
		StaticTTL:            conf.StaticTTL,
		RateLimit:            conf.RateLimit,
		RateWindow:           conf.RateWindow,
		Region:               conf.Region,
		Locale:               conf.Locale,
		DefaultRealm:         conf.DefaultRealm,
		DefaultGuild:         conf.DefaultGuild,
		HTTPTimeout:          conf.HTTPTimeout,
		BlizzardClientID:     conf.BlizzardClientID,
		BlizzardClientSecret: conf.BlizzardClientSecret,
		BlizzardTokenURL:     conf.BlizzardTokenURL,
		BlizzardAPIURL:       conf.BlizzardAPIURL,
		RaiderAPIURL:         conf.RaiderAPIURL,
	})
	if err != nil {
		panic(err)
	}
	defer bot.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
