/*
DESCRIPTION
  nistdump reads ANSI/NIST-ITL EFT transmission files, decodes their WSQ
  fingerprint images, and writes each to a TIFF alongside the parsed
  demographic record. It can run once against a directory of files or
  watch that directory for new arrivals.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.
*/

// Package main is the nistdump command-line driver.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/romainwurtz/nist-fingerprint/eft"
	"github.com/romainwurtz/nist-fingerprint/imaging"
	"github.com/romainwurtz/nist-fingerprint/wsq"
)

const pkg = "nistdump: "

// Logging configuration.
const (
	logPath      = "nistdump.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

func main() {
	in := flag.String("in", "", "EFT file or directory to process")
	out := flag.String("out", ".", "directory to write decoded TIFF images and JSON demographics into")
	watch := flag.Bool("watch", false, "keep running, processing new files as they arrive in -in")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if *in == "" {
		log.Fatal(pkg + "no -in file or directory given")
	}

	if *watch {
		if err := watchDir(*in, *out, log); err != nil {
			log.Fatal(pkg+"watch failed", "error", err.Error())
		}
		return
	}

	info, err := os.Stat(*in)
	if err != nil {
		log.Fatal(pkg+"could not stat -in", "error", err.Error())
	}
	if info.IsDir() {
		entries, err := os.ReadDir(*in)
		if err != nil {
			log.Fatal(pkg+"could not read -in directory", "error", err.Error())
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			processFile(filepath.Join(*in, e.Name()), *out, log)
		}
		return
	}
	processFile(*in, *out, log)
}

// processFile parses one EFT file and writes out a TIFF per Type-4 record
// plus a JSON summary of the Type-2 demographics, logging and continuing
// past any single-file failure.
func processFile(path, outDir string, log logging.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error(pkg+"could not read file", "path", path, "error", err.Error())
		return
	}

	ef, err := eft.Parse(data, eft.WithLogger(log))
	if err != nil {
		log.Error(pkg+"parse failed", "path", path, "error", err.Error())
		return
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if ef.Type2 != nil {
		if err := writeDemographics(outDir, base, ef.Type2); err != nil {
			log.Error(pkg+"could not write demographics", "path", path, "error", err.Error())
		}
	}

	for i, rec := range ef.Type4Records {
		img, err := wsq.Decode(rec.ImageData, wsq.WithLogger(log))
		if err != nil {
			log.Error(pkg+"wsq decode failed", "path", path, "idc", rec.IDC, "error", err.Error())
			continue
		}
		name := fmt.Sprintf("%s.%d.%s.tiff", base, i, rec.FingerName)
		if err := writeTIFF(filepath.Join(outDir, name), img); err != nil {
			log.Error(pkg+"could not write TIFF", "path", path, "error", err.Error())
			continue
		}
		log.Info(pkg+"decoded fingerprint", "path", path, "finger", rec.FingerName, "width", img.Width, "height", img.Height)
	}
}

func writeTIFF(path string, img *wsq.DecodedImage) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return imaging.WriteTIFF(f, img)
}

func writeDemographics(outDir, base string, t2 *eft.Type2) error {
	f, err := os.Create(filepath.Join(outDir, base+".json"))
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(t2)
}
