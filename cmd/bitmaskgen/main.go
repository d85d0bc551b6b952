package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/vovanwin/bitmaskgen/generator"
)

func main() {
	opts := generator.DefaultOptions()

	var (
		initSpecs bool
		verbose   bool
		quiet     bool
	)
	flag.StringVar(&opts.SpecDir, "specs", opts.SpecDir, "директория со спецификациями битовых масок")
	flag.StringVar(&opts.OutputDir, "output", opts.OutputDir, "директория для генерации")
	flag.StringVar(&opts.Package, "package", opts.Package, "имя пакета (по умолчанию $GOPACKAGE)")
	flag.BoolVar(&opts.Describe, "describe", false, "писать YAML манифест с вычисленными значениями")
	flag.BoolVar(&initSpecs, "init", false, "создать пример спецификации в -specs и выйти")
	flag.BoolVar(&verbose, "v", false, "подробный вывод")
	flag.BoolVar(&quiet, "q", false, "только предупреждения и ошибки")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "BitmaskGen - генератор типобезопасных битовых масок\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Использование: bitmaskgen [флаги] [файлы спецификаций...]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	opts.Files = flag.Args()

	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	switch {
	case verbose:
		log.SetLevel(log.DebugLevel)
	case quiet:
		log.SetLevel(log.WarnLevel)
	}

	if initSpecs {
		if err := generator.Init(opts); err != nil {
			log.WithError(err).Error("init failed")
			os.Exit(1)
		}
		return
	}

	log.WithFields(log.Fields{
		"specs":   opts.SpecDir,
		"output":  opts.OutputDir,
		"package": opts.Package,
	}).Debug("starting")

	if err := generator.Generate(opts); err != nil {
		fmt.Fprintf(os.Stderr, "\n✗ Ошибка: %v\n", err)
		os.Exit(1)
	}
}
