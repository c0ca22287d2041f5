// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sensor

import (
	"tinygo.org/x/bluetooth"

	"github.com/kortschak/classio/face"
)

// ConnectionWatcher posts ConnectivityChanged events for a Bluetooth peer.
type ConnectionWatcher struct {
	adapter *bluetooth.Adapter
}

// WatchConnection installs a connect handler on the adapter that posts
// the link state of the peer at addr. If addr is the zero Address, the
// link state of every peer is posted. WatchConnection must be called
// before the adapter connects to the peer.
func WatchConnection(adapter *bluetooth.Adapter, addr bluetooth.Address, post func(Event)) *ConnectionWatcher {
	adapter.SetConnectHandler(connectHandler(addr, post))
	return &ConnectionWatcher{adapter: adapter}
}

// connectHandler returns an adapter connect handler posting the link
// state of the peer at addr, or of every peer if addr is zero.
func connectHandler(addr bluetooth.Address, post func(Event)) func(bluetooth.Device, bool) {
	var zero bluetooth.Address
	return func(dev bluetooth.Device, connected bool) {
		if addr != zero && dev.Address != addr {
			return
		}
		post(ConnectivityChanged{Connectivity: face.ConnectivityState{Connected: connected}})
	}
}

// Close stops posting link state changes.
func (w *ConnectionWatcher) Close() error {
	w.adapter.SetConnectHandler(func(bluetooth.Device, bool) {})
	return nil
}
