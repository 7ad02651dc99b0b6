// Package main is the entry point for the token issuance Lambda.
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	tokenhandler "github.com/corvus-core/tokenservice/lambda"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	handler := tokenhandler.NewHandler()
	lambda.Start(handler.HandleRequest)
}
