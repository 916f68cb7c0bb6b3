package logger

import "go.uber.org/zap"

// New builds the application logger. Development mode gets human-readable
// console output, anything else the production JSON encoder.
func New(env string) (*zap.SugaredLogger, error) {
	var (
		zl  *zap.Logger
		err error
	)
	if env == "development" {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return zl.Sugar(), nil
}
