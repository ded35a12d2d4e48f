// Copyright 2016 CoreOS, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stop coordinates a group of independent decode workers so a
// caller can launch one per case and wait for all of them to finish.
package stop

import "sync"

// StopperFunc launches one unit of work and returns a channel that closes
// when it is done.
type StopperFunc func() <-chan struct{}

// Group collects StopperFuncs and waits for all of them together.
type Group struct {
	stoppables     []StopperFunc
	stoppablesLock sync.Mutex
}

// NewGroup allocates an empty Group.
func NewGroup() *Group {
	return &Group{}
}

// AddFunc registers a unit of work with the group.
func (cg *Group) AddFunc(toAddFunc StopperFunc) {
	cg.stoppablesLock.Lock()
	defer cg.stoppablesLock.Unlock()
	cg.stoppables = append(cg.stoppables, toAddFunc)
}

// Wait launches every registered unit of work and blocks until all of
// them have completed.
func (cg *Group) Wait() {
	cg.stoppablesLock.Lock()
	toRun := cg.stoppables
	cg.stoppables = nil
	cg.stoppablesLock.Unlock()

	waitChannels := make([]<-chan struct{}, 0, len(toRun))
	for _, run := range toRun {
		ch := run()
		if ch == nil {
			panic("stop: StopperFunc returned a nil channel")
		}
		waitChannels = append(waitChannels, ch)
	}
	for _, ch := range waitChannels {
		<-ch
	}
}
