package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apiconfig "investagent/pkg/api/config"
	apimarket "investagent/pkg/api/market"
	apireport "investagent/pkg/api/report"
	apitrades "investagent/pkg/api/trades"
	"investagent/pkg/core/agent"
	"investagent/pkg/core/bybit"
	"investagent/pkg/core/report"
	"investagent/pkg/core/secapi"
	"investagent/pkg/core/trades"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Provider configuration
	var agentCfg agent.Config
	if configData, err := os.ReadFile("config/agent.yaml"); err == nil {
		if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
			log.Printf("[API] failed to parse config/agent.yaml: %v", err)
		}
	}
	if agentCfg.ActiveProvider == "" {
		agentCfg.ActiveProvider = "openai"
	}
	agentMgr := agent.NewManager(agentCfg)

	// Core services
	analyzer := report.NewAnalyzer()
	secClient := secapi.NewClient(os.Getenv("SEC_API_KEY"))
	bybitClient := bybit.NewClient(os.Getenv("BYBIT_TESTNET") == "true")

	// Trade journal is optional: without DATABASE_URL its endpoints report
	// unavailability instead of failing startup.
	ctx := context.Background()
	var tradeStore *trades.Store
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			log.Printf("[API] failed to connect to database: %v", err)
		} else {
			defer pool.Close()
			store := trades.NewStore(pool)
			if err := store.InitSchema(ctx); err != nil {
				log.Printf("[API] failed to initialize trades schema: %v", err)
			} else {
				tradeStore = store
			}
		}
	} else {
		log.Println("[API] DATABASE_URL not set, trade journal endpoints disabled")
	}

	// Config endpoints
	configHandler := apiconfig.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Report analysis endpoints
	reportHandler := apireport.NewHandler(analyzer, secClient)
	http.HandleFunc("/api/report/analyze", reportHandler.HandleAnalyze)
	http.HandleFunc("/api/report/section", reportHandler.HandleSection)
	http.HandleFunc("/api/report/digest", reportHandler.HandleDigest)

	// Trade journal endpoints
	tradesHandler := apitrades.NewHandler(tradeStore)
	http.HandleFunc("/api/trades", tradesHandler.HandleTrades)
	http.HandleFunc("/api/trades/get", tradesHandler.HandleTrade)
	http.HandleFunc("/api/trades/close", tradesHandler.HandleClose)
	http.HandleFunc("/api/trades/statistics", tradesHandler.HandleStatistics)

	// Market data endpoints
	marketHandler := apimarket.NewHandler(bybitClient)
	http.HandleFunc("/api/market/price", marketHandler.HandlePrice)
	http.HandleFunc("/api/market/history", marketHandler.HandleHistory)
	http.HandleFunc("/api/market/symbols", marketHandler.HandleSymbols)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/report/analyze")
	fmt.Println("  - POST /api/report/section")
	fmt.Println("  - GET  /api/report/digest")
	fmt.Println("  - GET/POST /api/trades")
	fmt.Println("  - GET  /api/trades/get")
	fmt.Println("  - POST /api/trades/close")
	fmt.Println("  - GET  /api/trades/statistics")
	fmt.Println("  - GET  /api/market/price")
	fmt.Println("  - GET  /api/market/history")
	fmt.Println("  - GET  /api/market/symbols")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
