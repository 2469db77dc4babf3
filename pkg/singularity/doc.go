// Package singularity enforces at most one live instance of a managed type.
//
// Unlike a classic singleton, singularity does not force global access, nor
// does it require that the type have a niladic constructor. The lifetime of
// the instance is simply the interval between Create and Destroy. An instance
// created with Create must be passed into the code that depends on it, just
// like any other value. An instance created with CreateGlobal can additionally
// be retrieved with Get by anyone holding the type.
//
// Usage as a factory:
//
//	mgr := singularity.New[Horizon](singularity.WithConcurrency(singularity.Exclusive))
//	horizon, err := mgr.Create(func() (*Horizon, error) {
//		return NewHorizon(3, &event), nil
//	})
//	...
//	err = mgr.Destroy()
//
// Usage with global retrieval:
//
//	horizon, err := singularity.CreateGlobal(func() (*Horizon, error) {
//		return NewHorizon(3, &event), nil
//	})
//	same, err := singularity.Get[Horizon]()
//	err = singularity.Destroy[Horizon]()
package singularity
