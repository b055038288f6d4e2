// cmd/lendscore/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lendscore/internal/common/auth"
	"lendscore/internal/common/config"
	"lendscore/internal/common/logger"
	"lendscore/internal/common/observability"
	"lendscore/internal/lending/api"
	"lendscore/internal/lending/cache"
	"lendscore/internal/lending/presentation"
	"lendscore/internal/lending/workflow"
	"lendscore/internal/models"
)

// retryWithBackoff attempts to execute a function with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	var (
		beneficiaryID = flag.String("beneficiary", "", "beneficiary id to open a session for")
		action        = flag.String("action", "show", "show | consumption | score | apply | loans | stats")
		amount        = flag.Float64("amount", 0, "loan amount for -action apply")
		purpose       = flag.String("purpose", "", "loan purpose for -action apply")
		electricity   = flag.String("electricity", "", "electricity kWh/month for -action consumption (blank = leave unset)")
		mobile        = flag.String("mobile", "", "mobile recharge spend/month for -action consumption (blank = leave unset)")
		utility       = flag.String("utility", "", "average utility bill for -action consumption (blank = leave unset)")
	)
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Warn("metrics endpoint stopped", zap.Error(err))
			}
		}()
	}

	ctx := context.Background()

	// --- Credential capability ---
	var tokens auth.TokenProvider
	if cfg.Auth.Token != "" {
		tokens = auth.StaticTokenProvider(cfg.Auth.Token)
	} else {
		tokens = auth.NewClient(cfg.API.BaseURL, cfg.Auth.Email, cfg.Auth.Password)
	}

	var client api.Client = api.NewHTTPClient(cfg.API.BaseURL, tokens, cfg.API.RequestTimeout(), log)

	// --- Optional redis loans cache ---
	if cfg.Redis.Enabled {
		var rdb *cache.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = cache.NewRedis(cfg.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, running without loans cache", zap.Error(err))
		} else {
			defer rdb.Close()
			client = cache.New(client, rdb.Client, cfg.Redis.LoansCacheTTL(), log)
			zapLog.Info("Redis loans cache enabled")
		}
	}

	start := time.Now()
	err = run(ctx, *action, client, log, runArgs{
		beneficiaryID: *beneficiaryID,
		amount:        *amount,
		purpose:       *purpose,
		electricity:   *electricity,
		mobile:        *mobile,
		utility:       *utility,
	})
	obs.RecordDuration(ctx, *action, time.Since(start))
	if err != nil {
		obs.RecordOperation(ctx, *action, "failed")
		zapLog.Fatal("action failed", zap.String("action", *action), zap.Error(err))
	}
	obs.RecordOperation(ctx, *action, "completed")
}

type runArgs struct {
	beneficiaryID string
	amount        float64
	purpose       string
	electricity   string
	mobile        string
	utility       string
}

func run(ctx context.Context, action string, client api.Client, log logger.Logger, args runArgs) error {
	switch action {
	case "loans":
		loans, err := client.ListLoans(ctx)
		if err != nil {
			return err
		}
		for _, l := range loans {
			fmt.Printf("%s  %-10s  %s  %s\n", l.ID, l.Status, presentation.FormatCurrency(l.LoanAmount), l.LoanPurpose)
		}
		return nil

	case "stats":
		stats, err := client.GetStats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("beneficiaries: %d  applications: %d  approved: %d  approval rate: %.1f%%\n",
			stats.TotalBeneficiaries, stats.TotalApplications, stats.ApprovedLoans, stats.ApprovalRate)
		for band, count := range stats.RiskDistribution {
			fmt.Printf("  %-30s %d\n", band, count)
		}
		return nil
	}

	if args.beneficiaryID == "" {
		return fmt.Errorf("-beneficiary is required for action %q", action)
	}

	session := workflow.NewSession(args.beneficiaryID, client, log)
	defer session.Close()

	b, err := session.Load(ctx)
	if err != nil {
		return err
	}

	switch action {
	case "show":
		printBeneficiary(b, session.Consumption())
		return nil

	case "consumption":
		data, err := parseConsumption(args)
		if err != nil {
			return err
		}
		updated, err := session.UpdateConsumption(ctx, data)
		if err != nil {
			return err
		}
		printBeneficiary(updated, session.Consumption())
		return nil

	case "score":
		result, err := session.ComputeScore(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("score: %s\nrisk band: %s (%s)\nincome: %s\n%s\n",
			presentation.FormatScore(&result.CreditScore),
			result.RiskBand, presentation.MapRisk(&result.RiskBand),
			result.IncomeCategory, result.Explanation)
		for _, rec := range result.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
		return nil

	case "apply":
		record, err := session.ApplyForLoan(ctx, args.amount, args.purpose)
		if err != nil {
			return err
		}
		fmt.Printf("application %s: %s (%s for %q)\n",
			record.ID, record.Status, presentation.FormatCurrency(record.LoanAmount), record.LoanPurpose)
		return nil

	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

func printBeneficiary(b *models.Beneficiary, consumption models.ConsumptionData) {
	fmt.Printf("%s  (%s, age %d)\n", b.Name, b.BusinessType, b.Age)
	fmt.Printf("loan: %s over %d months\n", presentation.FormatCurrency(b.LoanAmount), b.LoanTenureMonths)
	fmt.Printf("score: %s  risk: %s\n", presentation.FormatScore(b.CreditScore), presentation.MapRisk(b.RiskBand))
	fmt.Printf("consumption: electricity=%s mobile=%s utility=%s\n",
		presentation.FormatOptionalAmount(consumption.ElectricityKWh),
		presentation.FormatOptionalAmount(consumption.MobileRechargeMonthly),
		presentation.FormatOptionalAmount(consumption.UtilityBillAvg))
	for _, r := range b.RepaymentHistory {
		fmt.Printf("  %s  %s  %s\n", r.LoanID, presentation.FormatCurrency(r.AmountPaid), presentation.MapRepaymentStatus(r.Status))
	}
}

// parseConsumption builds the update payload. A blank flag stays unset so
// the field is omitted from the request, preserving the distinction
// between "unknown" and "measured zero".
func parseConsumption(args runArgs) (models.ConsumptionData, error) {
	var data models.ConsumptionData
	var err error

	if data.ElectricityKWh, err = parseOptionalFloat(args.electricity); err != nil {
		return data, fmt.Errorf("invalid -electricity: %w", err)
	}
	if data.MobileRechargeMonthly, err = parseOptionalFloat(args.mobile); err != nil {
		return data, fmt.Errorf("invalid -mobile: %w", err)
	}
	if data.UtilityBillAvg, err = parseOptionalFloat(args.utility); err != nil {
		return data, fmt.Errorf("invalid -utility: %w", err)
	}
	return data, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
