package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/clinicware/portal-client/internal/gateway"
	"github.com/clinicware/portal-client/internal/portal"
	"github.com/clinicware/portal-client/internal/session"
	"github.com/clinicware/portal-client/internal/ui"
	"github.com/clinicware/portal-client/internal/workflow"
)

// The simulator drives the real client stack (gateway + workflows with a
// headless UI) against a backend and reports per-operation statistics.

type SimConfig struct {
	APIBaseURL    string
	Duration      time.Duration
	Workers       int
	RegisterRatio float64
	BookingRatio  float64
	StatusRatio   float64
	Username      string
	Password      string
}

type DataPool struct {
	mu           sync.RWMutex
	patients     []int64
	appointments []string
}

func (dp *DataPool) AddPatient(uid int64) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.patients = append(dp.patients, uid)
}

func (dp *DataPool) AddAppointment(id string) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.appointments = append(dp.appointments, id)
}

func (dp *DataPool) RandomPatient(rng *rand.Rand) (int64, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if len(dp.patients) == 0 {
		return 0, false
	}
	return dp.patients[rng.Intn(len(dp.patients))], true
}

func (dp *DataPool) RandomAppointment(rng *rand.Rand) (string, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if len(dp.appointments) == 0 {
		return "", false
	}
	return dp.appointments[rng.Intn(len(dp.appointments))], true
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Error     int64
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(latency time.Duration, success bool) {
	atomic.AddInt64(&om.Total, 1)
	if success {
		atomic.AddInt64(&om.Success, 1)
	} else {
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.latencies = append(om.latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.latencies) == 0 {
		return 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.latencies))
	copy(latencies, om.latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	avg = sum / time.Duration(len(latencies))

	p50 = latencies[len(latencies)*50/100]
	p95Idx := len(latencies) * 95 / 100
	if p95Idx >= len(latencies) {
		p95Idx = len(latencies) - 1
	}
	p95 = latencies[p95Idx]
	return avg, p50, p95
}

type Metrics struct {
	Register OperationMetrics
	Booking  OperationMetrics
	Status   OperationMetrics
}

// headlessUI satisfies the workflow boundaries without a terminal attached.
type headlessUI struct{}

func (headlessUI) Notify(message string, severity ui.Severity) {}
func (headlessUI) RenderRaw(payload []byte)                    {}
func (headlessUI) ResetRegisterForm()                          {}
func (headlessUI) ResetAppointmentForm()                       {}
func (headlessUI) ResetStatusForm()                            {}
func (headlessUI) SetAppointmentPatientUID(uid int64)          {}

// poolSlips stands in for the slip generator and records each booked
// appointment id so status-check workers have something to look up.
type poolSlips struct {
	pool *DataPool
}

func (s poolSlips) Generate(res portal.AppointmentResult) (string, error) {
	s.pool.AddAppointment(res.ID)
	return "", nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()
	log.Printf("config: backend=%s duration=%s workers=%d register=%.2f booking=%.2f status=%.2f",
		cfg.APIBaseURL, cfg.Duration, cfg.Workers, cfg.RegisterRatio, cfg.BookingRatio, cfg.StatusRatio)

	gofakeit.Seed(time.Now().UnixNano())

	// One shared session, like a clinic's terminals sharing a desk login.
	store := session.NewMemoryStore()
	gw := gateway.New(cfg.APIBaseURL, store, 10*time.Second, func() {
		log.Println("redirected to login boundary")
	})

	loginCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	sess, err := gw.Login(loginCtx, cfg.Username, cfg.Password)
	cancel()
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	log.Printf("signed in as %s (%s)", sess.DisplayName, sess.Role)

	pool := &DataPool{}
	metrics := &Metrics{}

	ctx, cancelRun := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancelRun()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			worker(ctx, workerID, cfg, gw, pool, metrics)
		}(i)
	}
	wg.Wait()

	log.Println("simulation complete")
	printReport(cfg, metrics)
}

func worker(ctx context.Context, workerID int, cfg SimConfig, gw *gateway.Gateway, pool *DataPool, metrics *Metrics) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	// Per-worker workflow instances: each workflow rejects overlapping
	// submissions of itself, so workers cannot share them.
	var headless headlessUI
	register := workflow.NewRegisterPatient(gw, headless, headless, headless)
	booking := workflow.NewBookAppointment(gw, headless, headless, headless, poolSlips{pool: pool})
	status := workflow.NewCheckStatus(gw, headless, headless, headless)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			r := rng.Float64()
			switch {
			case r < cfg.RegisterRatio:
				doRegister(ctx, register, gw, pool, metrics)
			case r < cfg.RegisterRatio+cfg.BookingRatio:
				doBooking(ctx, booking, rng, pool, metrics)
			default:
				doStatus(ctx, status, rng, pool, metrics)
			}
		}
	}
}

func doRegister(ctx context.Context, wf *workflow.RegisterPatient, gw *gateway.Gateway, pool *DataPool, metrics *Metrics) {
	draft := portal.PatientDraft{
		FirstName:     gofakeit.FirstName(),
		LastName:      gofakeit.LastName(),
		DOB:           gofakeit.DateRange(time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC)).Format("2006-01-02"),
		ContactNumber: gofakeit.Phone(),
		Address:       gofakeit.Address().Address,
	}

	start := time.Now()
	err := wf.Submit(ctx, draft)
	metrics.Register.Record(time.Since(start), err == nil)
	if err != nil {
		return
	}

	// Re-read the roster tail to learn the new uid without threading the
	// workflow's form boundary through the pool.
	resp, err := gw.Do(ctx, "GET", "/api/v1/patients", nil)
	if err != nil {
		return
	}
	var patients []portal.PatientSummary
	if err := resp.Decode(&patients); err != nil || len(patients) == 0 {
		return
	}
	pool.AddPatient(patients[len(patients)-1].PatientUID)
}

func doBooking(ctx context.Context, wf *workflow.BookAppointment, rng *rand.Rand, pool *DataPool, metrics *Metrics) {
	uid, ok := pool.RandomPatient(rng)
	if !ok {
		return
	}

	input := workflow.BookingInput{
		PatientUID:      strconv.FormatInt(uid, 10),
		DoctorID:        fmt.Sprintf("DR-%03d", rng.Intn(20)+1),
		AppointmentTime: time.Now().Add(time.Duration(rng.Intn(72)+1) * time.Hour).Format(time.RFC3339),
		Status:          portal.StatusPending,
	}

	start := time.Now()
	err := wf.Submit(ctx, input)
	metrics.Booking.Record(time.Since(start), err == nil)
}

func doStatus(ctx context.Context, wf *workflow.CheckStatus, rng *rand.Rand, pool *DataPool, metrics *Metrics) {
	id, ok := pool.RandomAppointment(rng)
	if !ok {
		return
	}

	start := time.Now()
	err := wf.Submit(ctx, id)
	metrics.Status.Record(time.Since(start), err == nil)
}

func printReport(cfg SimConfig, metrics *Metrics) {
	fmt.Println("\n" + strings.Repeat("=", 72))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("Duration: %s  Workers: %d\n\n", cfg.Duration, cfg.Workers)

	printOperationReport("Register", &metrics.Register)
	printOperationReport("Booking", &metrics.Booking)
	printOperationReport("Status check", &metrics.Status)
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	errCount := atomic.LoadInt64(&om.Error)
	avg, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d  Success: %d (%.1f%%)  Errors: %d\n",
		total, success, float64(success)/float64(total)*100, errCount)
	fmt.Printf("  Latency: avg=%s p50=%s p95=%s\n\n",
		avg.Round(time.Millisecond), p50.Round(time.Millisecond), p95.Round(time.Millisecond))
}

func loadConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL:    getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:      getDuration("SIM_DURATION", 30*time.Second),
		Workers:       getInt("SIM_WORKERS", 10),
		RegisterRatio: getFloat("SIM_REGISTER_RATIO", 0.3),
		BookingRatio:  getFloat("SIM_BOOKING_RATIO", 0.4),
		StatusRatio:   getFloat("SIM_STATUS_RATIO", 0.3),
		Username:      getEnv("SIM_USERNAME", "frontdesk"),
		Password:      getEnv("SIM_PASSWORD", "frontdesk123"),
	}

	total := cfg.RegisterRatio + cfg.BookingRatio + cfg.StatusRatio
	if total > 0 {
		cfg.RegisterRatio /= total
		cfg.BookingRatio /= total
		cfg.StatusRatio /= total
	}

	if cfg.Workers <= 0 {
		log.Fatal("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		log.Fatal("SIM_DURATION must be > 0")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
