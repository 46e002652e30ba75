// Command pathlockfs is not run directly; it is built with
// `go build -buildmode=c-shared` into pathlockfs.so and loaded into a
// target process via LD_PRELOAD. Every libc entry point pathlock
// intercepts is exported from this package with the exact C signature the
// dynamic linker expects in place of the real symbol.
package main

/*
// cgo cannot attach __attribute__((constructor)) / ((destructor)) to a Go
// function directly, so these two static trampolines carry the attribute
// and call back into the exported Go functions that do the real work.
extern void pathlockOnLoad(void);
extern void pathlockOnUnload(void);

__attribute__((constructor))
static void pl_ctor(void) { pathlockOnLoad(); }

__attribute__((destructor))
static void pl_dtor(void) { pathlockOnUnload(); }
*/
import "C"

func main() {}
