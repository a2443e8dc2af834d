package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"investagent/pkg/core/agent"
	"investagent/pkg/core/bybit"
	"investagent/pkg/core/cache"
	"investagent/pkg/core/edgar"
	"investagent/pkg/core/report"
	"investagent/pkg/core/secapi"
	"investagent/pkg/core/tools"
	"investagent/pkg/core/trades"
)

func printWelcome(toolCount int) {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Printf("%40s\n", "Investment AI Agent")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf(`
This AI agent can help you with financial market analysis, company information,
and investment insights. It uses SEC EDGAR data to provide reliable information
about publicly traded companies. %d tools are available.

Type 'exit', 'quit', or 'q' to end the session.
Type 'clear' to start a new conversation.
Type 'help' for more information.
Type 'tools' to see available tools.
`, toolCount)
	fmt.Println(strings.Repeat("-", 80) + "\n")
}

func printHelp() {
	fmt.Println(`
Example queries:
- "Tell me about Apple Inc. (AAPL)"
- "What are the recent SEC filings for Tesla (TSLA)?"
- "Download and analyze the latest 10-K for Microsoft (MSFT)"
- "What is the current price of BTCUSDT?"
- "Add a long trade: 100 AAPL at 185.50 opened 2026-08-01, Momentum strategy"
- "Show my trade statistics for this quarter"

Commands:
- 'exit', 'quit', or 'q': end the session
- 'clear': start a new conversation
- 'help': display this help information
- 'tools': show available tools`)
}

func printTools(registry *tools.Registry) {
	list := registry.List()
	fmt.Printf("\nThe agent has access to %d tools:\n\n", len(list))
	for i, tool := range list {
		description := tool.Description
		if len(description) > 80 {
			description = description[:77] + "..."
		}
		fmt.Printf("%d. %s\n   %s\n", i+1, tool.Name, description)
	}
	fmt.Println()
}

func main() {
	godotenv.Load()

	var agentCfg agent.Config
	if configData, err := os.ReadFile("config/agent.yaml"); err == nil {
		if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
			log.Printf("[Agent] failed to parse config/agent.yaml: %v", err)
		}
	}
	if agentCfg.ActiveProvider == "" {
		agentCfg.ActiveProvider = "openai"
	}

	ctx := context.Background()
	ttlCache := cache.New()

	deps := tools.Deps{
		Analyzer: report.NewAnalyzer(),
		Edgar:    edgar.NewClient(ttlCache),
		Cache:    ttlCache,
		SecAPI:   secapi.NewClient(os.Getenv("SEC_API_KEY")),
		Bybit:    bybit.NewClient(os.Getenv("BYBIT_TESTNET") == "true"),
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			log.Printf("[Agent] failed to connect to database: %v", err)
		} else {
			defer pool.Close()
			store := trades.NewStore(pool)
			if err := store.InitSchema(ctx); err != nil {
				log.Printf("[Agent] failed to initialize trades schema: %v", err)
			} else {
				deps.Trades = store
			}
		}
	}

	registry := tools.NewRegistry()
	tools.RegisterAll(registry, deps)

	manager := agent.NewManager(agentCfg)
	loop := agent.NewLoop(manager, registry, agent.AdvisorPrompt)
	session := loop.NewSession()
	log.Printf("[Agent] session %s started with provider %s", session.ID, manager.GetActiveProvider())

	printWelcome(registry.Len())

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println("\nExiting Investment AI Agent. Goodbye!")
			return
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "":
			continue
		case "exit", "quit", "q":
			fmt.Println("\nExiting Investment AI Agent. Goodbye!")
			return
		case "clear":
			session = loop.NewSession()
			fmt.Println("\nConversation history cleared. Starting a new conversation.")
			continue
		case "help":
			printHelp()
			continue
		case "tools":
			printTools(registry)
			continue
		}

		fmt.Println("\nThinking...")
		answer, err := loop.Run(ctx, session, input)
		if err != nil {
			fmt.Printf("\nError: %v\nPlease try again with a different query.\n", err)
			continue
		}
		fmt.Printf("\nAgent: %s\n\n", answer)
	}
}
