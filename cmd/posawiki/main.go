package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/posawiki/posawiki/internal/profile"
	"github.com/posawiki/posawiki/internal/version"
	"github.com/posawiki/posawiki/plugin/youtube"
	"github.com/posawiki/posawiki/server"
	"github.com/posawiki/posawiki/server/auth"
	"github.com/posawiki/posawiki/server/service/tagauthority"
	"github.com/posawiki/posawiki/store"
	"github.com/posawiki/posawiki/store/db"
)

const greetingBanner = `
Posa Wiki - video archive catalog and tag authority
`

var rootCmd = &cobra.Command{
	Use:   "posawiki",
	Short: "Video archive catalog with a curated tag authority",
	Run: func(_ *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		instanceProfile, storeInstance, err := openStore(ctx)
		if err != nil {
			slog.Error("failed to open store", slog.String("error", err.Error()))
			return
		}

		s, err := server.NewServer(ctx, instanceProfile, storeInstance)
		if err != nil {
			slog.Error("failed to create server", slog.String("error", err.Error()))
			return
		}

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-c
			slog.Info("received signal, shutting down", slog.String("signal", sig.String()))
			s.Shutdown(ctx)
			cancel()
		}()

		fmt.Print(greetingBanner)
		fmt.Printf("Version %s has been started on port %d\n", instanceProfile.Version, instanceProfile.Port)
		if err := s.Start(ctx); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", slog.String("error", err.Error()))
			cancel()
		}

		<-ctx.Done()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed-authorities",
	Short: "Load the starter authority vocabulary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, storeInstance, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		svc, err := tagauthority.NewService(ctx, storeInstance)
		if err != nil {
			return err
		}
		result, err := svc.Seed(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d authorities (%d already present), %d aliases added, %d conflicts skipped\n",
			result.CreatedAuthorities, result.ExistingAuthorities, result.AddedAliases, result.SkippedConflicts)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <scrape.json>",
	Short: "Import a channel scrape file into the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, storeInstance, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		result, err := youtube.NewImporter(storeInstance).Import(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d of %d videos (%d skipped)\n", result.Imported, result.Total, result.Skipped)

		revalidate, _ := cmd.Flags().GetBool("revalidate")
		if !revalidate {
			return nil
		}
		svc, err := tagauthority.NewService(ctx, storeInstance)
		if err != nil {
			return err
		}
		split, err := svc.Revalidate(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Revalidated %d videos: %d validated tags, %d unvalidated\n",
			split.Videos, split.ValidatedTags, split.UnvalidatedTags)
		return nil
	},
}

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Print the tag authority coverage report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, storeInstance, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		svc, err := tagauthority.NewService(ctx, storeInstance)
		if err != nil {
			return err
		}
		report, err := svc.Analyze(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Tag authority coverage\n")
		fmt.Printf("  Distinct raw tags: %d (%.1f%% covered)\n", report.DistinctRawTags, report.UniqueTagCoverage*100)
		fmt.Printf("  Tag instances:     %d (%.1f%% covered)\n", report.TotalInstances, report.InstanceCoverage*100)

		fmt.Printf("\nTop authorities by instance count:\n")
		for i, usage := range report.Authorities {
			if i >= 10 {
				break
			}
			fmt.Printf("  %-35s %5d instances in %d videos\n", usage.CanonicalName, usage.InstanceCount, usage.VideoCount)
		}

		top, _ := cmd.Flags().GetInt("top")
		fmt.Printf("\nTop unmatched tags:\n")
		for i, unmatched := range report.UnmatchedRanked {
			if i >= top {
				break
			}
			fmt.Printf("  %-35s %5d\n", unmatched.RawTag, unmatched.InstanceCount)
		}
		return nil
	},
}

var revalidateCmd = &cobra.Command{
	Use:   "revalidate",
	Short: "Re-split every video's tags against the current authorities",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, storeInstance, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer storeInstance.Close()

		svc, err := tagauthority.NewService(ctx, storeInstance)
		if err != nil {
			return err
		}
		result, err := svc.Revalidate(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Revalidated %d videos (%d updated): %d validated tags, %d unvalidated\n",
			result.Videos, result.UpdatedVideos, result.ValidatedTags, result.UnvalidatedTags)
		return nil
	},
}

var mintTokenCmd = &cobra.Command{
	Use:   "mint-token",
	Short: "Mint a curator API token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		secret := viper.GetString("secret")
		if secret == "" {
			return fmt.Errorf("a configured secret is required to mint tokens")
		}
		subject, _ := cmd.Flags().GetString("subject")
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := auth.GenerateToken(subject, auth.Role(role), secret, ttl)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func openStore(ctx context.Context) (*profile.Profile, *store.Store, error) {
	instanceProfile := &profile.Profile{
		Mode:        viper.GetString("mode"),
		Addr:        viper.GetString("addr"),
		Port:        viper.GetInt("port"),
		Data:        viper.GetString("data"),
		Driver:      viper.GetString("driver"),
		DSN:         viper.GetString("dsn"),
		InstanceURL: viper.GetString("instance-url"),
		Secret:      viper.GetString("secret"),
		Version:     version.GetCurrentVersion(viper.GetString("mode")),
	}
	instanceProfile.FromEnv()
	if err := instanceProfile.Validate(); err != nil {
		return nil, nil, err
	}

	dbDriver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return nil, nil, err
	}
	storeInstance := store.New(dbDriver, instanceProfile)
	if err := storeInstance.Migrate(ctx); err != nil {
		return nil, nil, err
	}
	return instanceProfile, storeInstance, nil
}

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8081)
	viper.SetDefault("data", "")

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver")
	rootCmd.PersistentFlags().String("dsn", "", "database source name")
	rootCmd.PersistentFlags().String("instance-url", "", "the url of your posawiki instance")
	rootCmd.PersistentFlags().String("secret", "", "secret used to sign curator tokens")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn", "instance-url", "secret"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("posawiki")
	viper.AutomaticEnv()

	mintTokenCmd.Flags().String("subject", "curator", "token subject")
	mintTokenCmd.Flags().String("role", string(auth.RoleEditor), `token role, "editor" or "admin"`)
	mintTokenCmd.Flags().Duration("ttl", 30*24*time.Hour, "token lifetime")

	importCmd.Flags().Bool("revalidate", true, "re-split video tags after importing")

	rootCmd.AddCommand(seedCmd, importCmd, coverageCmd, revalidateCmd, mintTokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
