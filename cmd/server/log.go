package main

import "github.com/stringfold/ally/pkg/logger"

func logFieldErr(err error) logger.Field {
	return logger.Field{Key: "error", Value: err.Error()}
}
