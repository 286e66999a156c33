package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/apolyakov/reelmark/internal/api"
	"github.com/apolyakov/reelmark/internal/client/models"
	"github.com/apolyakov/reelmark/internal/client/resource"
	"github.com/apolyakov/reelmark/internal/common"
)

const listTimeout = 30 * time.Second

var errUsage = errors.New(`usage:
  signup <name>                        create an account
  signin <name>                        switch to an account
  signout                              clear the current account
  react <assetId> <MOVIE|SHOW> <UNSPECIFIED|THUMBS_UP|THUMBS_DOWN>
  list <MOVIE|SHOW> [sentimentType]    list assets for the current account
  show <assetId> <MOVIE|SHOW>          show one asset
  clear                                remove all reactions of the current account
  sync                                 push pending writes now
  run                                  keep syncing until interrupted`)

// Run dispatches one command. args excludes the program name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "signup":
		if len(args) != 2 {
			return errUsage
		}
		return a.signUp(ctx, args[1])
	case "signin":
		if len(args) != 2 {
			return errUsage
		}
		return a.signIn(ctx, args[1])
	case "signout":
		return a.signOut(ctx)
	case "react":
		if len(args) != 4 {
			return errUsage
		}
		return a.react(ctx, args[1], api.AssetType(args[2]), api.SentimentType(args[3]))
	case "list":
		if len(args) < 2 || len(args) > 3 {
			return errUsage
		}
		sentiment := api.SentimentUnspecified
		if len(args) == 3 {
			sentiment = api.SentimentType(args[2])
		}
		return a.list(ctx, api.AssetType(args[1]), sentiment)
	case "show":
		if len(args) != 3 {
			return errUsage
		}
		return a.show(ctx, args[1], api.AssetType(args[2]))
	case "clear":
		return a.clear(ctx)
	case "sync":
		a.scheduler.SyncNow(ctx)
		return nil
	case "run":
		return a.runForever(ctx)
	default:
		return errUsage
	}
}

func (a *App) signUp(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("account name must not be empty")
	}
	a.accounts.SignUp(ctx, name)
	a.exec.Wait()
	fmt.Fprintf(a.out, "account %q created\n", name)
	return nil
}

func (a *App) signIn(ctx context.Context, name string) error {
	result := a.accounts.SetCurrent(ctx, name, true)
	a.exec.Wait()
	if ok, _ := result.Value(); !ok {
		return fmt.Errorf("%w: %q", common.ErrAccountMissing, name)
	}
	fmt.Fprintf(a.out, "signed in as %q\n", name)
	return nil
}

func (a *App) signOut(ctx context.Context) error {
	current, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}
	a.accounts.SetCurrent(ctx, current.Name, false)
	a.exec.Wait()
	fmt.Fprintf(a.out, "signed out %q\n", current.Name)
	return nil
}

func (a *App) react(ctx context.Context, assetID string, assetType api.AssetType, sentiment api.SentimentType) error {
	if !assetType.Valid() {
		return fmt.Errorf("invalid asset type: %q", assetType)
	}
	if !sentiment.Valid() {
		return fmt.Errorf("invalid sentiment type: %q", sentiment)
	}
	current, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}
	a.assets.React(ctx, current.Name, assetID, assetType, sentiment)
	a.exec.Wait()
	fmt.Fprintf(a.out, "%s %s\n", sentiment, assetID)
	return nil
}

// list observes the network-bound asset stream until it reaches a terminal
// envelope and prints the result.
func (a *App) list(ctx context.Context, assetType api.AssetType, sentiment api.SentimentType) error {
	if !assetType.Valid() {
		return fmt.Errorf("invalid asset type: %q", assetType)
	}
	if !sentiment.Valid() {
		return fmt.Errorf("invalid sentiment type: %q", sentiment)
	}
	current, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}

	stream := a.assets.Assets(ctx, assetType, current.Name, sentiment)
	results := make(chan resource.Resource[[]models.AssetSentiment], 8)
	cancel := stream.Observe(func(r resource.Resource[[]models.AssetSentiment]) { results <- r })
	defer cancel()

	deadline := time.After(listTimeout)
	for {
		select {
		case r := <-results:
			switch r.Status {
			case resource.StatusLoading:
				continue
			case resource.StatusError:
				fmt.Fprintf(a.out, "warning: %s (showing local data)\n", r.Err)
			}
			for _, item := range r.Value {
				fmt.Fprintf(a.out, "%-12s %-6s %-40s %s\n", item.Asset.AssetID, item.Asset.AssetType, item.Asset.Title, item.Sentiment)
			}
			fmt.Fprintf(a.out, "%d asset(s)\n", len(r.Value))
			return nil
		case <-deadline:
			return errors.New("timed out waiting for asset list")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *App) show(ctx context.Context, assetID string, assetType api.AssetType) error {
	if !assetType.Valid() {
		return fmt.Errorf("invalid asset type: %q", assetType)
	}
	current, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}

	item, valid := a.assets.Asset(ctx, current.Name, assetID, assetType).Value()
	if !valid || item == nil {
		return fmt.Errorf("no such asset: %q", assetID)
	}

	fmt.Fprintf(a.out, "%s (%s, %d)\n", item.Asset.Title, item.Asset.AssetType, item.Asset.Year)
	fmt.Fprintf(a.out, "  plot:      %s\n", item.Asset.Plot)
	fmt.Fprintf(a.out, "  runtime:   %s\n", item.Asset.Runtime)
	fmt.Fprintf(a.out, "  imdb:      %s\n", item.Asset.IMDBRating)
	fmt.Fprintf(a.out, "  tomatoes:  %s\n", item.Asset.RottenTomatoesRating)
	fmt.Fprintf(a.out, "  reaction:  %s\n", item.Sentiment)
	return nil
}

func (a *App) clear(ctx context.Context) error {
	current, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}
	a.assets.ClearSentiments(ctx, current.Name)
	a.exec.Wait()
	fmt.Fprintf(a.out, "cleared reactions for %q\n", current.Name)
	return nil
}

// runForever blocks running the sync scheduler until SIGINT/SIGTERM.
func (a *App) runForever(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.log.Info(ctx, "sync scheduler started", "interval", a.config.SyncInterval)
	a.scheduler.Run(ctx)
	a.log.Info(ctx, "sync scheduler stopped")
	return nil
}

func (a *App) currentAccount(ctx context.Context) (*models.Account, error) {
	current, valid := a.accounts.Current(ctx).Value()
	if !valid || current == nil {
		return nil, errors.New("not signed in")
	}
	return current, nil
}
