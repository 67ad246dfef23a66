// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package a

//tz:secure_callable
//export write_thing
func WriteThing(val uint32) {}
