package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/corpchat/internal/client/feed"
	"github.com/dmitrijs2005/corpchat/internal/client/guard"
	"github.com/dmitrijs2005/corpchat/internal/client/models"
)

var getMultiline = GetMultiline

var errNotInChat = errors.New("not in chat view")

func (a *App) startFeed(ctx context.Context) {
	a.feedMu.Lock()
	a.lastSeen = 0
	a.feedMu.Unlock()

	p := feed.New(a.chatService.Fetch, feed.Options{
		Interval: a.config.PollInterval,
		Active:   a.store.IsAuthenticated,
		OnUpdate: a.renderPage,
		OnError: func(err error) {
			a.printf("error: %s (type 'retry' to try again)\n", err)
		},
		Logger: a.logger,
	})

	a.pollerMu.Lock()
	defer a.pollerMu.Unlock()
	if a.closed {
		return
	}
	if err := p.Start(ctx); err != nil {
		a.logger.Error(ctx, "feed not started", "error", err)
		return
	}
	a.poller = p
}

// stopFeed returns once the current poller has stopped fetching.
func (a *App) stopFeed() {
	a.pollerMu.Lock()
	p := a.poller
	a.poller = nil
	a.pollerMu.Unlock()

	if p != nil {
		p.Stop()
	}
}

func (a *App) currentPoller() *feed.Poller {
	a.pollerMu.Lock()
	defer a.pollerMu.Unlock()
	return a.poller
}

// renderPage prints the messages of page not shown yet, oldest first.
func (a *App) renderPage(page *models.MessagePage) {
	if page == nil {
		return
	}

	a.feedMu.Lock()
	var fresh []models.Message
	for _, m := range page.Results {
		if m.ID > a.lastSeen {
			fresh = append(fresh, m)
		}
	}
	for _, m := range fresh {
		if m.ID > a.lastSeen {
			a.lastSeen = m.ID
		}
	}
	a.feedMu.Unlock()

	for i := len(fresh) - 1; i >= 0; i-- {
		a.printf("%s\n", formatMessage(fresh[i]))
	}
}

func formatMessage(m models.Message) string {
	ts := "--:--"
	if !m.CreatedAt.IsZero() {
		ts = m.CreatedAt.Local().Format("15:04")
	}
	return "[" + ts + "] " + m.AuthorName() + ": " + m.Content
}

// Send posts text, or prompts for a multi-line message when text is empty.
// The feed is refreshed right after a successful send.
func (a *App) Send(ctx context.Context, text string) error {
	if a.view != guard.Chat {
		a.println("Open the chat first: go chat")
		return errNotInChat
	}

	if strings.TrimSpace(text) == "" {
		var err error
		text, err = getMultiline(a.reader, "Enter message", a.out)
		if err != nil {
			return err
		}
	}

	if _, err := a.chatService.Send(ctx, text); err != nil {
		a.reportError(err)
		return err
	}

	if p := a.currentPoller(); p != nil {
		p.Retry()
	}
	return nil
}

// Retry re-fetches the feed after an error paused it.
func (a *App) Retry(ctx context.Context) error {
	p := a.currentPoller()
	if a.view != guard.Chat || p == nil {
		a.println("Open the chat first: go chat")
		return errNotInChat
	}
	if p.Err() == nil {
		a.println("Feed is up to date.")
		return nil
	}
	p.Retry()
	return nil
}
