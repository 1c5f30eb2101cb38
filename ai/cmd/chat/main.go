package main

import (
	"context"
	"log"
	"net/http"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/server"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"portalsst.com/portalsst/ai/portal"
	"portalsst.com/portalsst/infrastructure/devops"
	"portalsst.com/portalsst/store/sheetstore"
)

var history = []*ai.Message{}

var model = googlegenai.GoogleAIModelRef("gemini-2.5-flash", &genai.GenerateContentConfig{
	MaxOutputTokens: 500,
	Temperature:     genai.Ptr[float32](0.0),
	TopP:            genai.Ptr[float32](0.4),
	TopK:            genai.Ptr[float32](5),
	ThinkingConfig: &genai.ThinkingConfig{
		ThinkingBudget: genai.Ptr[int32](0),
	},
})

type ExpiringInput struct {
	Table      string `json:"table" jsonschema_description:"Table (NR) name, empty for all tables"`
	WithinDays int    `json:"withinDays" jsonschema_description:"Lookahead window in days, default 30"`
}

type WorkerInput struct {
	Matricula string `json:"matricula" jsonschema_description:"Worker badge number"`
}

func main() {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg, err := devops.LoadConfig(ctx)
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	tabs := map[string]string{}
	for _, tab := range cfg.Tabs {
		tabs[tab.Name] = tab.URL
	}
	st := sheetstore.New(tabs, logger)

	// The Google AI plugin reads GEMINI_API_KEY or GOOGLE_API_KEY from the
	// environment when no key is passed.
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}, &portal.PortalPlugin{}))

	expiring := genkit.DefineTool(g, "expiringRecords", "List workers whose NR training or ASO is expired or expiring",
		func(tctx *ai.ToolContext, input ExpiringInput) (string, error) {
			return portal.ExpiringRecords(tctx.Context, st, input.Table, input.WithinDays)
		},
	)

	worker := genkit.DefineTool(g, "workerLookup", "Look up one worker's training situation by matrícula",
		func(tctx *ai.ToolContext, input WorkerInput) (string, error) {
			return portal.WorkerSummary(tctx.Context, st, cfg.WorkersTable, input.Matricula)
		},
	)

	bot := genkit.DefineStreamingFlow(g, "sesmt", func(ctx context.Context, input string, cb ai.ModelStreamCallback) (string, error) {
		resp, err := genkit.Generate(ctx, g,
			ai.WithModel(model),
			ai.WithSystem(`
		Você é o assistente do SESMT para controle de treinamentos de Normas
		Regulamentadoras (NR) e ASO.

		Diretrizes:
		1. Responda sempre em português, de forma curta e direta.
		2. Use a ferramenta expiringRecords para perguntas sobre vencimentos;
		   nunca invente nomes ou datas.
		3. Use a ferramenta workerLookup quando a pergunta citar uma matrícula.
		4. Datas são exibidas no formato DD/MM/AAAA.
		5. "Vencendo" significa que o vencimento cai nos próximos 30 dias;
		   "Vencido" significa que a data já passou.
		6. Não dê orientação de segurança do trabalho além do que os dados
		   mostram; encaminhe dúvidas normativas ao técnico responsável.
		`),
			ai.WithStreaming(cb),
			ai.WithTools(expiring, worker),
			ai.WithMessages(history...),
			ai.WithPrompt(input))
		if err != nil {
			return "", err
		}

		logger.Debug("generation usage",
			zap.Int("inputTokens", resp.Usage.InputTokens),
			zap.Int("outputTokens", resp.Usage.OutputTokens),
			zap.Int("totalTokens", resp.Usage.TotalTokens))

		history = resp.History()

		return resp.Text(), nil
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", genkit.Handler(bot))
	log.Fatal(server.Start(ctx, "127.0.0.1:3400", mux))
}
