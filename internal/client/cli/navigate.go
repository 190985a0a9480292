package cli

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/corpchat/internal/client/guard"
)

// Navigate moves to the named view, subject to the route guard.
func (a *App) Navigate(ctx context.Context, name string) error {
	v, err := guard.Parse(name)
	if err != nil {
		a.printf("%s; views: %v\n", err, guard.Views())
		return err
	}
	return a.navigate(ctx, v)
}

func (a *App) navigate(ctx context.Context, requested guard.View) error {
	d := guard.Resolve(a.isLoggedIn(), requested)
	if d.Redirected {
		a.logger.Debug(ctx, "navigation redirected", "requested", requested, "view", d.View)
		if d.View == guard.Login {
			a.println("Please log in first.")
		}
	}

	if a.view == guard.Chat && d.View != guard.Chat {
		a.stopFeed()
	}
	prev := a.view
	a.view = d.View

	switch d.View {
	case guard.Chat:
		if prev != guard.Chat || a.currentPoller() == nil {
			a.startFeed(ctx)
		}
	case guard.Profile:
		return a.RefreshProfile(ctx)
	}
	return nil
}

// enforceGuard re-checks the current view after every command, so a session
// cleared in the background moves the user off protected views.
func (a *App) enforceGuard(ctx context.Context) {
	if guard.Protected(a.view) && !a.isLoggedIn() {
		_ = a.navigate(ctx, a.view)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
