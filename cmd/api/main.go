package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student-calendar-assistant/config"
	_ "student-calendar-assistant/docs" // Swagger docs
	"student-calendar-assistant/internal/agent"
	"student-calendar-assistant/internal/agent/orchestrator"
	"student-calendar-assistant/internal/agent/tools"
	extractUC "student-calendar-assistant/internal/extract/usecase"
	"student-calendar-assistant/internal/httpserver"
	"student-calendar-assistant/internal/model"
	"student-calendar-assistant/internal/schedule"
	"student-calendar-assistant/internal/schedule/session"
	scheduleUC "student-calendar-assistant/internal/schedule/usecase"
	"student-calendar-assistant/pkg/gcalendar"
	"student-calendar-assistant/pkg/llmprovider"
	"student-calendar-assistant/pkg/log"
)

// @title       Student Calendar Assistant API
// @description AI-assisted student schedule planning with Google Calendar, conflict detection, and slot negotiation.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Student Calendar Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Google Calendar client (optional until token.json exists)
	var calendarClient *gcalendar.Client
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
		} else {
			logger.Info(ctx, "Google Calendar initialized")
		}
	} else {
		logger.Warn(ctx, "google_calendar.credentials_path not set, calendar features disabled")
	}

	// 4. LLM provider chain
	specs := make([]llmprovider.ProviderSpec, 0, len(cfg.LLM.Providers))
	for _, p := range cfg.LLM.Providers {
		if !p.Enabled {
			continue
		}
		specs = append(specs, llmprovider.ProviderSpec{
			Name:    p.Name,
			APIKey:  p.APIKey,
			Model:   p.Model,
			BaseURL: p.BaseURL,
		})
	}
	providers, err := llmprovider.NewProviders(specs)
	if err != nil {
		logger.Errorf(ctx, "Failed to build LLM providers: %v", err)
		return
	}
	llmManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)

	// 5. Schedule domain
	searchCfg := scheduleUC.SearchConfig{
		WindowDays:        cfg.Schedule.SearchWindowDays,
		StepMinutes:       cfg.Schedule.SearchStepMinutes,
		ActiveWindowHours: cfg.Schedule.ActiveWindowHours,
		MaxSlots:          cfg.Schedule.MaxSlots,
		CalendarID:        cfg.GoogleCalendar.CalendarID,
	}
	// A nil *gcalendar.Client must not reach the usecase as a non-nil
	// interface; calendar-dependent stages check for nil and refuse.
	var calendar schedule.Calendar
	if calendarClient != nil {
		calendar = calendarClient
	}
	scheduleUseCase := scheduleUC.New(logger, calendar, nil, searchCfg)
	sessions := session.NewStore(cfg.Schedule.SessionCacheSize, cfg.Schedule.SessionTTL)

	// 6. Extraction domain
	extractUseCase := extractUC.New(logger, llmManager)

	// 7. Agent domain: tools need a working calendar client
	var orch *orchestrator.Orchestrator
	if calendarClient != nil {
		registry := agent.NewToolRegistry()
		calendarID := cfg.GoogleCalendar.CalendarID
		timezone := cfg.GoogleCalendar.Timezone

		registry.Register(tools.NewListEventsTool(calendarClient, logger, calendarID, timezone))
		registry.Register(tools.NewCheckFreeBusyTool(calendarClient, logger, calendarID))
		registry.Register(tools.NewCreateEventTool(calendarClient, logger, calendarID, timezone))
		registry.Register(tools.NewDeleteEventTool(calendarClient, logger, calendarID))

		if cfg.Semester.Start != "" && cfg.Semester.End != "" {
			searcher := scheduleUC.NewSlotSearcher(calendarClient, searchCfg)
			window := model.SemesterWindow{
				SemesterStart: cfg.Semester.Start,
				SemesterEnd:   cfg.Semester.End,
				Timezone:      timezone,
			}
			registry.Register(tools.NewFindSlotsTool(searcher, logger, window))
		} else {
			logger.Info(ctx, "semester.start/end not set, slot search tool disabled")
		}

		orch = orchestrator.New(llmManager, registry, logger, timezone)
		logger.Infof(ctx, "Agent initialized with %d tools", len(registry.List()))
	} else {
		logger.Warn(ctx, "Agent chat disabled: Google Calendar client unavailable")
	}

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ScheduleUseCase: scheduleUseCase,
		ExtractUseCase:  extractUseCase,
		Sessions:        sessions,
		Orchestrator:    orch,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
