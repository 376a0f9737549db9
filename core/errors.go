// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "github.com/cockroachdb/errors"

// Initialisation failures. Errors returned by the renderer wrap one of
// these, test for them with errors.Is.
var (
	ErrUnsupportedExtension = errors.New("unsupported instance extension")
	ErrInstanceCreation     = errors.New("instance creation failed")
	ErrNoCapableDevice      = errors.New("no vulkan capable device")
	ErrNoSuitableDevice     = errors.New("no suitable physical device")
	ErrDeviceCreation       = errors.New("logical device creation failed")
	ErrRendererState        = errors.New("renderer in wrong state")
)
