/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/valpere/urduproxy/internal/config"
	"github.com/valpere/urduproxy/internal/server"
	"github.com/valpere/urduproxy/internal/serverless"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run under the AWS Lambda runtime",
	Long: `Serve API Gateway HTTP API (payload v2) events through the same
routes as "serve". Events of the form {"source":"warmup"} are answered
without calling the translation provider.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(v)

		log, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer log.Sync()

		h, closeFn, err := buildHandler(cfg, log)
		if err != nil {
			return err
		}
		defer closeFn()

		adapter := serverless.New(server.NewRouter(h, log), log)
		lambda.Start(adapter.Invoke)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}
