package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ivlev/seamcarver/internal/config"
	"github.com/ivlev/seamcarver/internal/energy"
	"github.com/ivlev/seamcarver/internal/engine"
	"github.com/ivlev/seamcarver/internal/logging"
	"github.com/ivlev/seamcarver/internal/plan"
	"github.com/ivlev/seamcarver/internal/report"
	"github.com/ivlev/seamcarver/internal/source"
	"github.com/ivlev/seamcarver/internal/system"
	"github.com/ivlev/seamcarver/internal/video"
)

// BuildVersion задаётся через -ldflags "-X main.BuildVersion=..."
var BuildVersion = "dev"

const (
	defaultInputDir = "input/images"
	defaultPlanDir  = "plans"
	benchmarkLog    = "benchmark.log"
)

func main() {
	fs := flag.NewFlagSet("seamcarver", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML-файл конфигурации")
	registerFlags(fs)
	fs.Parse(os.Args[1:])

	cfg := config.Default()
	cfg.BuildVersion = BuildVersion
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "[-] Ошибка конфигурации: %v\n", err)
			os.Exit(2)
		}
	}
	if err := cfg.LoadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка окружения: %v\n", err)
		os.Exit(2)
	}
	if err := applyFlags(fs, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка флагов: %v\n", err)
		os.Exit(2)
	}

	log := logging.New(logging.Options{Debug: cfg.Debug, File: cfg.LogFile})
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "[-] Ошибка: %v\n", err)
		os.Exit(1)
	}
}

// registerFlags declares every command line option. Values are read back
// in applyFlags so that only flags given explicitly override the config.
func registerFlags(fs *flag.FlagSet) {
	fs.String("input", "", "Путь к изображению, папке с изображениями или PDF (по умолчанию: самый свежий файл в input/images/)")
	fs.String("output", "", "Папка для результатов (по умолчанию: output/)")
	fs.Int("page", -1, "Номер страницы/изображения, начиная с 0 (-1: все)")
	fs.Int("width", 0, "Целевая ширина (0: не менять)")
	fs.Int("height", 0, "Целевая высота (0: не менять)")
	fs.Int("cols", 0, "Сколько вертикальных швов удалить")
	fs.Int("rows", 0, "Сколько горизонтальных швов удалить")
	fs.String("energy", energy.VariantDualGradient, "Функция энергии: "+strings.Join(energy.Variants(), ", "))
	fs.String("order", config.OrderColumnsFirst, "Порядок удаления: columns-first, rows-first, interleave")
	fs.Int("workers", 0, "Потоки (0: по числу ядер и свободной памяти)")
	fs.String("plan", "", "Выполнить план из YAML (\"latest\": самый свежий в plans/)")
	fs.String("write-plan", "", "Только записать план в YAML (\"auto\": новый файл в plans/)")
	fs.Bool("overlay", false, "Сохранить первый вертикальный и горизонтальный шов поверх исходника")
	fs.Bool("energy-map", false, "Сохранить карту энергии")
	fs.Bool("compare", false, "Сохранить сравнение с равномерным масштабированием")
	fs.Bool("plot", false, "Сохранить график энергии удалённых швов")
	fs.Bool("animate", false, "Записать видео процесса через ffmpeg")
	fs.Int("fps", 30, "FPS анимации")
	fs.String("encoder", "libx264", "Видеокодек анимации (\"auto\": аппаратный, если доступен)")
	fs.String("validate", "", "Проверить энергию и швы по эталону в YAML")
	fs.Int("dpi", 150, "DPI для страниц PDF")
	fs.String("log-file", "", "JSON-лог с ротацией")
	fs.Bool("debug", false, "Подробный лог")
	fs.Bool("stats", false, "Показать отчёт и дописать его в benchmark.log")
}

// applyFlags copies explicitly set flags into cfg.
func applyFlags(fs *flag.FlagSet, cfg *config.Config) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		switch f.Name {
		case "input":
			cfg.InputPath = v
		case "output":
			cfg.OutputDir = v
		case "energy":
			cfg.Energy = v
		case "order":
			cfg.Order = v
		case "plan":
			cfg.PlanInput = v
		case "write-plan":
			cfg.PlanOutput = v
		case "encoder":
			cfg.VideoEncoder = v
		case "validate":
			cfg.ValidateReference = v
		case "log-file":
			cfg.LogFile = v
		case "page":
			cfg.Page, err = strconv.Atoi(v)
		case "width":
			cfg.TargetWidth, err = strconv.Atoi(v)
		case "height":
			cfg.TargetHeight, err = strconv.Atoi(v)
		case "cols":
			cfg.RemoveColumns, err = strconv.Atoi(v)
		case "rows":
			cfg.RemoveRows, err = strconv.Atoi(v)
		case "workers":
			cfg.Workers, err = strconv.Atoi(v)
		case "fps":
			cfg.AnimationFPS, err = strconv.Atoi(v)
		case "dpi":
			cfg.DPI, err = strconv.Atoi(v)
		case "overlay":
			cfg.Overlay, err = strconv.ParseBool(v)
		case "energy-map":
			cfg.EnergyMap, err = strconv.ParseBool(v)
		case "compare":
			cfg.Compare, err = strconv.ParseBool(v)
		case "plot":
			cfg.Plot, err = strconv.ParseBool(v)
		case "animate":
			cfg.Animate, err = strconv.ParseBool(v)
		case "debug":
			cfg.Debug, err = strconv.ParseBool(v)
		case "stats":
			cfg.ShowStats, err = strconv.ParseBool(v)
		}
		if err != nil {
			err = fmt.Errorf("-%s: %w", f.Name, err)
		}
	})
	return err
}

func run(cfg *config.Config, log *zap.Logger) error {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits(log)

	// Создаем нужные директории, если их нет
	for _, d := range []string{defaultInputDir, cfg.OutputDir} {
		os.MkdirAll(d, 0755)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.ValidateReference != "" {
		return runValidation(cfg)
	}

	p, err := loadPlan(cfg)
	if err != nil {
		return err
	}

	if cfg.PlanOutput != "" {
		path := cfg.PlanOutput
		if path == "auto" {
			path = plan.GeneratePlanPath(defaultPlanDir)
		}
		if err := plan.WritePlan(p, path); err != nil {
			return fmt.Errorf("ошибка записи плана: %w", err)
		}
		fmt.Printf("[+] План сохранён: %s (%d заданий)\n", path, len(p.Jobs))
		return nil
	}

	var enc video.FrameEncoder
	if cfg.Animate {
		if cfg.VideoEncoder == "auto" {
			cfg.VideoEncoder = system.GetBestH264Encoder()
			if cfg.VideoEncoder != "libx264" {
				fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.VideoEncoder)
			}
		}
		enc = video.NewFFmpegEncoder()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	project := engine.NewCarveProject(cfg, p, enc, log)
	rep, err := project.Run(ctx)
	if rep != nil {
		report.PrintSummary(os.Stdout, rep.Summary, rep.Results)
		if cfg.ShowStats {
			if berr := report.AppendBenchmark(benchmarkLog, cfg.InputPath, rep.Summary, time.Now()); berr != nil {
				fmt.Printf("[!] Не удалось записать %s: %v\n", benchmarkLog, berr)
			}
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("[+++] Успех! Результаты: %s\n", cfg.OutputDir)
	return nil
}

// loadPlan reads the requested plan file or builds one from cfg.
func loadPlan(cfg *config.Config) (*plan.Plan, error) {
	if cfg.PlanInput != "" {
		path := cfg.PlanInput
		if path == "latest" {
			latest, err := plan.FindLatestPlan(defaultPlanDir)
			if err != nil {
				return nil, err
			}
			path = latest
		}
		fmt.Printf("[*] Используется план: %s\n", path)
		return plan.ReadPlan(path)
	}

	if cfg.InputPath == "" {
		latest, err := system.FindLatestImage(defaultInputDir, source.IsImage)
		if err != nil {
			return nil, fmt.Errorf("%w. Положите изображение в %s/", err, defaultInputDir)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", cfg.InputPath)
	}

	src, err := source.Open(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации источника: %w", err)
	}
	defer src.Close()

	return plan.FromConfig(cfg, src)
}

func runValidation(cfg *config.Config) error {
	fn, err := energy.New(cfg.Energy)
	if err != nil {
		return err
	}
	v, err := engine.ValidateFile(cfg.ValidateReference, cfg.InputPath, cfg.DPI, fn)
	if err != nil {
		return err
	}
	v.Print(os.Stdout)
	if err := v.Err(); err != nil {
		return err
	}
	fmt.Println("[+] Проверка пройдена")
	return nil
}
