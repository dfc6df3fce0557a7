// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log"

	dotenv "github.com/dsh2dsh/expx-dotenv"

	"github.com/citizencage/drupal-8-twig-helpers/internal/cli"
)

func main() {
	if err := dotenv.New().WithDepth(1).Load(); err != nil {
		log.Fatal(fmt.Errorf("failed parse .env file(s): %w", err))
	}
	cli.Execute()
}
