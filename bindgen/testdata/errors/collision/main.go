// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

//tz:secure_callable
//export jdmbadxekx
func First() {}

//tz:secure_callable
//export hmssmjgpfp
func Second() {}

func main() {}
