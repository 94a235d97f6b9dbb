package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/herald-hq/herald/internal/common"
	"github.com/herald-hq/herald/internal/model"
)

func testWebhookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-webhook",
		Short: "Send a test message to the configured webhook",
		Long: `Posts a short test message through the configured Slack webhook so you can
verify the URL and channel before real events arrive.`,
		RunE: runTestWebhook,
	}
}

func runTestWebhook(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	action := model.TestAction{SpaceID: a.cfg.SpaceID}
	result := a.handlers.TestConnection(ctx, action, a.cfg.Notifications)

	if !result.Success {
		return common.NewUserError(result.Message, errors.New(result.Error))
	}

	cmd.Println("✅ Test message delivered. Check your Slack channel.")
	return nil
}
