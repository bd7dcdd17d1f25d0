package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scaling-waffle/internal/metrics"
	"github.com/mauv0809/scaling-waffle/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// SendNewMatches posts one message mentioning every player that was just
// assigned a seat.
func (s *Notifier) SendNewMatches(userPublicIDs []string, dryRun bool) error {
	if len(userPublicIDs) == 0 {
		return nil
	}

	mentions := make([]string, 0, len(userPublicIDs))
	for _, id := range userPublicIDs {
		mentions = append(mentions, fmt.Sprintf("<@%s>", id))
	}

	headerText := slack.NewTextBlockObject(slack.PlainTextType, "🎾 You're in!", true, false)
	bodyText := slack.NewTextBlockObject(
		slack.MarkdownType,
		fmt.Sprintf("%s: a court slot has been assigned to you. Confirm your spot to lock it in.", strings.Join(mentions, " ")),
		false, false,
	)
	message := slack.NewBlockMessage(
		slack.NewHeaderBlock(headerText),
		slack.NewSectionBlock(bodyText, nil, nil),
	)

	if err := s.sendMessage(message, dryRun); err != nil {
		s.metrics.IncNotifFailed()
		return err
	}
	s.metrics.IncNotifSent()
	return nil
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return fmt.Errorf("failed to send slack message: %w", err)
	}
	return nil
}
