// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command adkpatterns runs the bundled agent workflows against a configured model.
package main

func main() {
	Execute()
}
