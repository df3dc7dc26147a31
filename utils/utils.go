package utils

import (
	"log/slog"
)

func Check(e error) {
	if e != nil {
		slog.Error("Unexpected Error", "error", e)
		panic(e)
	}
}

func Loge(e error) {
	if e != nil {
		slog.Error("", "error", e)
	}
}

func Logde(e error) {
	if e != nil {
		slog.Debug("", "error", e)
	}
}
