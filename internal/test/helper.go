package test

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func DummyLogger(w io.Writer) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "message",
	})

	writer := zap.CombineWriteSyncers(zapcore.AddSync(os.Stderr), zapcore.AddSync(w))

	l := zap.New(zapcore.NewCore(encoder, writer, zapcore.DebugLevel))
	zap.RedirectStdLog(l)

	return l
}

// ChartData returns a chart data response body with a single result built
// from the given JSON fragments.
func ChartData(data, colnames, indexnames, coltypes string) string {
	return fmt.Sprintf(`{"result":[{"data":%s,"colnames":%s,"indexnames":%s,"coltypes":%s}]}`,
		data, colnames, indexnames, coltypes,
	)
}
