// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"example.com/firmware/secure/api"
	"example.com/firmware/secure/bindings"
)

func main() {
	bindings.WriteThing(api.Double(api.Return5()))
}
