// Package jscanvas implements surface.Surface on top of an HTML <canvas>
// element through syscall/js. It is only available with GOOS=js GOARCH=wasm.
package jscanvas
