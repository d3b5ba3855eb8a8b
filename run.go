/*
Copyright © 2026 the coastal authors.
This file is part of coastal.

coastal is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

coastal is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with coastal.  If not, see <http://www.gnu.org/licenses/>.
*/

package coastal

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// StepLimit sets Done once the simulation has taken numSteps steps.
func StepLimit(numSteps int) DomainManipulator {
	return func(s *Simulation) error {
		if s.step >= numSteps {
			s.Done = true
		}
		return nil
	}
}

// DurationLimit sets Done once the simulation time reaches duration [s].
func DurationLimit(duration float64) DomainManipulator {
	// tolerance for accumulated time
	const eps = 1e-9
	return func(s *Simulation) error {
		if s.time >= duration-eps*math.Max(1, duration) {
			s.Done = true
		}
		return nil
	}
}

// StepsFor returns the number of steps of length dt needed to cover
// duration.
func StepsFor(duration, dt float64) int {
	return int(math.Ceil(duration/dt - 1e-9))
}

// Log writes a status record to l every `every` steps.
func Log(l logrus.FieldLogger, every int) DomainManipulator {
	startTime := time.Now()
	timeStepTime := time.Now()
	if every < 1 {
		every = 1
	}
	return func(s *Simulation) error {
		if s.step%every != 0 {
			return nil
		}
		l.WithFields(logrus.Fields{
			"step":      s.step,
			"time":      s.time,
			"walltime":  time.Since(startTime).Seconds(),
			"Δwalltime": time.Since(timeStepTime).Seconds() / float64(every),
			"maxAbs":    MaxAbs(s.cur),
		}).Info("coastal: step complete")
		timeStepTime = time.Now()
		return nil
	}
}
