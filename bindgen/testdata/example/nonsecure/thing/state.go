// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package thing

import (
	"example.com/firmware/nonsecure/thing/private"
)

var state = private.Initial
