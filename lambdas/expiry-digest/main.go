package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"portalsst.com/portalsst/core"
	"portalsst.com/portalsst/infrastructure/communication"
	"portalsst.com/portalsst/infrastructure/devops"
	"portalsst.com/portalsst/lambdas/common"
	"portalsst.com/portalsst/lambdas/expiry-digest/helper"
	"portalsst.com/portalsst/store"
	"portalsst.com/portalsst/store/sheetstore"
	"portalsst.com/portalsst/utils"
)

type DigestEvent struct {
	Tables *[]string `json:"tables"`
	DryRun bool      `json:"dryRun"`
}

func buildDigest(ctx context.Context, st store.TableStore, tables *[]string) (*helper.Digest, map[string][]string, error) {
	var names []string
	var err error
	if tables == nil {
		names, err = st.List(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list tables: %w", err)
		}
	} else {
		names = *tables
	}

	today := utils.Today()
	digest := &helper.Digest{Date: today}
	columns := map[string][]string{}

	for _, name := range names {
		tbl, err := st.Load(ctx, name)
		if err != nil {
			fmt.Printf("[ERROR] failed to load table %s: %v\n", name, err)
			continue
		}
		digest.Tables = append(digest.Tables, helper.BuildDigest(tbl, today))
		columns[name] = tbl.Columns
	}
	return digest, columns, nil
}

func sendDigest(ctx context.Context, cfg *devops.Config, digest *helper.Digest, columns map[string][]string) error {
	slack := communication.ConnectSlack()
	if err := slack.Info(helper.FormatSlackMessage(digest)); err != nil {
		fmt.Printf("[ERROR] slack post failed: %v\n", err)
	}

	if len(cfg.Digest.Recipients) == 0 {
		return nil
	}

	info := &communication.EmailInfo{
		From:    cfg.Digest.From,
		To:      cfg.Digest.Recipients,
		Subject: fmt.Sprintf("Vencimentos NR - %s", digest.Date.Format("02/01/2006")),
		Text:    helper.FormatEmailText(digest),
	}
	for _, t := range digest.Tables {
		if len(t.Expired) == 0 && len(t.Expiring) == 0 {
			continue
		}
		content, err := helper.AttachmentCSV(t, columns[t.Table])
		if err != nil {
			return fmt.Errorf("failed to build attachment for %s: %w", t.Table, err)
		}
		info.Attachments = append(info.Attachments, communication.EmailAttachment{
			Filename:    core.ExportFilename(t.Table, digest.Date),
			ContentType: "text/csv",
			Content:     content,
		})
	}

	return communication.SendEmail(ctx, info)
}

func HandleRequest(ctx context.Context, event interface{}) (interface{}, error) {
	eventJson, _ := json.Marshal(event)

	var digestEvent DigestEvent
	var bedrockEvent common.BedrockEvent

	// A Bedrock agent and the EventBridge schedule send different shapes.
	_ = json.Unmarshal(eventJson, &bedrockEvent)
	if bedrockEvent.ActionGroup != "" {
		if tableParam := bedrockEvent.GetParameter("table"); tableParam != "" {
			digestEvent.Tables = &[]string{tableParam}
		}
		if dryRunParam := bedrockEvent.GetParameter("dryrun"); strings.EqualFold(dryRunParam, "true") {
			digestEvent.DryRun = true
		}
	} else if err := json.Unmarshal(eventJson, &digestEvent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal digest event: %w", err)
	}

	summary, err := runDigest(ctx, digestEvent)
	if err != nil {
		return nil, err
	}

	if bedrockEvent.ActionGroup != "" && bedrockEvent.Function != "" {
		return common.NewBedrockResponse(bedrockEvent.ActionGroup, bedrockEvent.Function, summary), nil
	}
	return summary, nil
}

func runDigest(ctx context.Context, event DigestEvent) (map[string]int, error) {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := devops.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	tabs := map[string]string{}
	for _, tab := range cfg.Tabs {
		tabs[tab.Name] = tab.URL
	}
	st := sheetstore.New(tabs, logger)

	digest, columns, err := buildDigest(ctx, st, event.Tables)
	if err != nil {
		return nil, err
	}

	summary := map[string]int{}
	for _, t := range digest.Tables {
		summary[t.Table] = len(t.Expired) + len(t.Expiring)
	}

	if !digest.HasFindings() {
		fmt.Printf("[INFO] nothing expiring, digest skipped\n")
		return summary, nil
	}
	if event.DryRun {
		fmt.Printf("[INFO] dry run, digest not sent\n%s", helper.FormatEmailText(digest))
		return summary, nil
	}

	if err := sendDigest(ctx, cfg, digest, columns); err != nil {
		return nil, err
	}
	return summary, nil
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
	} else {
		results, err := runDigest(context.Background(), DigestEvent{DryRun: true})
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			os.Exit(1)
		}
		resJson, _ := json.MarshalIndent(results, "", "  ")
		fmt.Printf("[SUCCESS] Results:\n%s\n", string(resJson))
	}
}
