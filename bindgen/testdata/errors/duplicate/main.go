// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"example.com/errors/duplicate/a"
	"example.com/errors/duplicate/b"
)

func main() {
	a.WriteThing(1)
	b.WriteThing(2)
}
