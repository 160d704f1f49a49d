//go:build noviewer

package main

import "errors"

func view(p *params_view) error {
	return errors.New("mathcanvas was built without the viewer")
}
