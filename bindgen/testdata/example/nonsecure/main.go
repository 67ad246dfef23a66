// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"example.com/firmware/nonsecure/bindings"
	"example.com/firmware/nonsecure/thing"
)

func main() {
	thing.WriteThing(bindings.Return5())
}
