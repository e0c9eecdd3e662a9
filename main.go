package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"bitbot/internal/adapters/handler"
	"bitbot/internal/adapters/provider"
	"bitbot/internal/adapters/search"
	"bitbot/internal/adapters/sender"
	"bitbot/internal/adapters/store"
	"bitbot/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting bitbot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	viper.SetDefault("chat.system_prompt", service.DefaultSystemPrompt)
	viper.SetDefault("openai.model", "gpt-5-mini")
	viper.SetDefault("openai.reasoning_effort", "low")
	viper.SetDefault("search.endpoint", "https://api.search.brave.com/res/v1/web/search")
	viper.SetDefault("search.max_results", 5)
	viper.SetDefault("search.excerpt_length", 300)
	viper.SetDefault("handler.timeout", "90s")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var updateHandler *handler.UpdateHandler

	token := viper.GetString("telegram.bot_token")
	opts := []bot.Option{
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			updateHandler.Handle(ctx, b, update)
		}),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		log.Panic().Err(err).Msg("failed fetching bot identity")
	}

	s := sender.NewTelegramSender(b)

	completer := provider.NewOpenAI(
		viper.GetString("openai.api_key"),
		viper.GetString("openai.model"),
		viper.GetString("openai.reasoning_effort"))

	searcher := search.NewBrave(
		viper.GetString("search.endpoint"),
		viper.GetString("search.api_key"),
		viper.GetInt("search.max_results"),
		viper.GetInt("search.excerpt_length"))

	conversationStore := store.NewRedis(viper.GetString("redis.url"))

	assembler := service.NewContextAssembler(viper.GetString("chat.system_prompt"))
	chatResponder := service.NewChatResponder(assembler, completer, searcher, conversationStore, s)
	inlineResponder := service.NewInlineResponder(completer)

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for handler in config")
	}

	updateHandler = handler.NewUpdateHandler(chatResponder, inlineResponder, me.ID, handlerTimeout)

	log.Info().Str("username", me.Username).Msg("bot listening")
	b.Start(ctx)
}
