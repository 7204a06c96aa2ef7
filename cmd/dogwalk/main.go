package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"dogwalk/internal/adapters/discord"
	"dogwalk/internal/adapters/rest"
	"dogwalk/internal/application"
	"dogwalk/internal/config"
	"dogwalk/internal/domain/rotation"
	"dogwalk/internal/infrastructure/classifier"
	"dogwalk/internal/infrastructure/database"
	"dogwalk/internal/infrastructure/i18n"
	"dogwalk/internal/infrastructure/memory"
	"dogwalk/internal/infrastructure/photos"
	"dogwalk/internal/ports/output"
	"dogwalk/pkg/tz"
)

type repositories struct {
	participants output.ParticipantRepository
	walks        output.WalkRepository
	turn         output.TurnRepository
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Storage initialisation failed: %v", err)
	}
	defer repos.close()

	photoStore, err := photos.NewDiskStore(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatalf("❌ Photo store: %v", err)
	}
	translator := i18n.NewTranslator(cfg.Locale)
	cls := newClassifier(cfg)

	events := application.NewTurnEvents()
	turns := application.NewTurnService(repos.turn, repos.participants, events, cfg.TurnWriteRetries)
	turns.SetChainPolicy(rotation.ChainPolicy(cfg.ReplacementChain))
	participants := application.NewParticipantService(repos.participants, turns)
	verifier := application.NewVerifier(cls, application.VerifierConfig{
		Delay:         cfg.VerificationDelay,
		Timeout:       cfg.VerificationTimeout,
		SweepInterval: cfg.SweepInterval,
	})
	walks := application.NewWalkService(repos.walks, repos.participants, photoStore, cls, verifier, turns,
		application.WalkConfig{
			Mode:           cfg.VerificationMode,
			Quorum:         cfg.RejectionQuorum,
			PendingTimeout: cfg.PendingTimeout,
			HoldOverrides:  !cfg.OverrideRotates,
		})

	router := rest.NewRouter(&rest.Handler{
		Participants: participants,
		Turns:        turns,
		Walks:        walks,
		T:            translator,
	}, cfg.UploadDir)

	var bot *discord.Bot
	if cfg.DiscordEnabled() {
		bot, err = discord.NewBot(discord.BotConfig{
			Token:            cfg.DiscordToken,
			ChannelID:        cfg.DiscordChannelID,
			Locale:           cfg.Locale,
			Location:         tz.Load(cfg.Timezone),
			ReminderInterval: cfg.DiscordReminderInterval,
		}, turns, translator)
		if err != nil {
			log.Fatalf("❌ Discord: %v", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	srv := rest.NewServer(ctx, ":"+cfg.Port, router)
	g.Go(func() error {
		log.Printf("🚀 Server listening on :%s (store=%s, verification=%s)", cfg.Port, cfg.StoreDriver, cfg.VerificationMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error { return verifier.Run(ctx, walks) })

	if bot != nil {
		g.Go(func() error {
			// A Discord outage must not take the API down.
			if err := bot.Run(ctx); err != nil {
				log.Printf("❌ Discord bot stopped: %v", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("❌ %v", err)
		repos.close()
		os.Exit(1)
	}
	log.Println("👋 Shut down cleanly.")
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Println("⚠️ Using the in-memory store, data is lost on restart.")
		return &repositories{
			participants: memory.NewParticipantRepository(),
			walks:        memory.NewWalkRepository(),
			turn:         memory.NewTurnRepository(),
			close:        func() {},
		}, nil
	}

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return &repositories{
		participants: database.NewParticipantRepository(pool),
		walks:        database.NewWalkRepository(pool),
		turn:         database.NewTurnRepository(pool),
		close:        pool.Close,
	}, nil
}

func newClassifier(cfg *config.Config) output.Classifier {
	switch cfg.Classifier {
	case config.ClassifierAlways:
		return classifier.Fixed{Verdict: output.Verdict{Present: true, Confidence: 0.9}}
	case config.ClassifierNever:
		return classifier.Fixed{Verdict: output.Verdict{Present: false, Confidence: 0.1}}
	case config.ClassifierOff:
		return classifier.Unavailable{}
	default:
		return classifier.NewRandom(cfg.ClassifierApprovalRate, uint64(time.Now().UnixNano()))
	}
}
