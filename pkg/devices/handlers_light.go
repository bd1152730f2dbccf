package devices

import (
	"github.com/Djelibeybi/lifx-emulator/pkg/packets"
)

func init() {
	registerHandler(packets.LightGetType, CapLight, handleLightGet)
	registerHandler(packets.LightSetColorType, CapLight, handleLightSetColor)
	registerHandler(packets.LightSetWaveformType, CapLight, handleLightSetWaveform)
	registerHandler(packets.LightGetPowerType, CapLight, handleLightGetPower)
	registerHandler(packets.LightSetPowerType, CapLight, handleLightSetPower)
	registerHandler(packets.LightSetWaveformOptionalType, CapLight, handleLightSetWaveformOptional)
	registerHandler(packets.LightGetInfraredType, CapInfrared, handleGetInfrared)
	registerHandler(packets.LightSetInfraredType, CapInfrared, handleSetInfrared)
	registerHandler(packets.LightGetHevCycleType, CapHev, handleGetHevCycle)
	registerHandler(packets.LightSetHevCycleType, CapHev, handleSetHevCycle)
	registerHandler(packets.LightGetHevCycleConfigurationType, CapHev, handleGetHevCycleConfiguration)
	registerHandler(packets.LightSetHevCycleConfigurationType, CapHev, handleSetHevCycleConfiguration)
	registerHandler(packets.LightGetLastHevCycleResultType, CapHev, handleGetLastHevCycleResult)
}

func lightState(s *State) *packets.LightState {
	return &packets.LightState{
		Color: s.Color,
		Power: s.PowerLevel,
		Label: packets.NewLabel(s.Label),
	}
}

func handleLightGet(s *State, _ packets.Payload, _ request) result {
	return respond(lightState(s))
}

// handleLightSetColor applies the target color instantly; the duration is
// surfaced to observers so they can synthesize the transition externally.
func handleLightSetColor(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.LightSetColor)
	if !ok {
		return result{}
	}

	s.Color = set.Color
	s.Color.Kelvin = s.ClampKelvin(set.Color.Kelvin)
	s.fillZonesFromColor()

	if !req.resRequired() {
		return mutate(set.Duration)
	}
	return mutate(set.Duration, lightState(s))
}

func handleLightSetWaveform(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.LightSetWaveform)
	if !ok {
		return result{}
	}

	s.Color = set.Color
	s.Color.Kelvin = s.ClampKelvin(set.Color.Kelvin)
	s.fillZonesFromColor()

	if !req.resRequired() {
		return mutate(set.Period)
	}
	return mutate(set.Period, lightState(s))
}

// handleLightSetWaveformOptional keeps every HSBK component whose Set flag
// is zero.
func handleLightSetWaveformOptional(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.LightSetWaveformOptional)
	if !ok {
		return result{}
	}

	if set.SetHue != 0 {
		s.Color.Hue = set.Color.Hue
	}
	if set.SetSaturation != 0 {
		s.Color.Saturation = set.Color.Saturation
	}
	if set.SetBrightness != 0 {
		s.Color.Brightness = set.Color.Brightness
	}
	if set.SetKelvin != 0 {
		s.Color.Kelvin = s.ClampKelvin(set.Color.Kelvin)
	}
	s.fillZonesFromColor()

	if !req.resRequired() {
		return mutate(set.Period)
	}
	return mutate(set.Period, lightState(s))
}

func handleLightGetPower(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.LightStatePower{Level: s.PowerLevel})
}

func handleLightSetPower(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.LightSetPower)
	if !ok {
		return result{}
	}
	s.PowerLevel = ClampPower(set.Level)

	if !req.resRequired() {
		return mutate(set.Duration)
	}
	return mutate(set.Duration, &packets.LightStatePower{Level: s.PowerLevel})
}

func handleGetInfrared(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.LightStateInfrared{Brightness: s.InfraredBrightness})
}

func handleSetInfrared(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.LightSetInfrared)
	if !ok {
		return result{}
	}
	s.InfraredBrightness = set.Brightness

	if !req.resRequired() {
		return mutate(0)
	}
	return mutate(0, &packets.LightStateInfrared{Brightness: s.InfraredBrightness})
}

func hevCycleState(s *State, req request) *packets.LightStateHevCycle {
	return &packets.LightStateHevCycle{
		DurationS:  s.HevCycleTotal,
		RemainingS: s.HevCycleRemaining(req.now),
		LastPower:  boolToUint8(s.HevLastPower > 0),
	}
}

func handleGetHevCycle(s *State, _ packets.Payload, req request) result {
	return respond(hevCycleState(s, req))
}

// handleSetHevCycle starts or interrupts a clean cycle. The running state
// expires on its own; the engine never ticks it.
func handleSetHevCycle(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.LightSetHevCycle)
	if !ok {
		return result{}
	}

	if set.Enable != 0 {
		duration := set.DurationS
		if duration == 0 {
			duration = s.HevCycleDuration
		}
		s.HevCycleTotal = duration
		s.HevCycleEndsAt = req.now.Add(secondsToDuration(duration))
		s.HevLastPower = s.PowerLevel
		s.HevLastResult = packets.HevResultBusy
	} else if s.HevCycleRunning(req.now) {
		s.HevCycleEndsAt = req.now
		s.HevLastResult = packets.HevResultInterruptedByLAN
	}

	if !req.resRequired() {
		return mutate(0)
	}
	return mutate(0, hevCycleState(s, req))
}

func handleGetHevCycleConfiguration(s *State, _ packets.Payload, _ request) result {
	return respond(&packets.LightStateHevCycleConfiguration{
		Indication: boolToUint8(s.HevIndication),
		DurationS:  s.HevCycleDuration,
	})
}

func handleSetHevCycleConfiguration(s *State, p packets.Payload, req request) result {
	set, ok := p.(*packets.LightSetHevCycleConfiguration)
	if !ok {
		return result{}
	}
	s.HevIndication = set.Indication != 0
	if set.DurationS > 0 {
		s.HevCycleDuration = set.DurationS
	}

	if !req.resRequired() {
		return mutate(0)
	}
	return mutate(0, &packets.LightStateHevCycleConfiguration{
		Indication: boolToUint8(s.HevIndication),
		DurationS:  s.HevCycleDuration,
	})
}

// handleGetLastHevCycleResult reports the outcome of the previous cycle; a
// cycle that ran out its clock counts as a success.
func handleGetLastHevCycleResult(s *State, _ packets.Payload, req request) result {
	if s.HevLastResult == packets.HevResultBusy && !s.HevCycleRunning(req.now) {
		s.HevLastResult = packets.HevResultSuccess
	}
	return respond(&packets.LightStateLastHevCycleResult{Result: s.HevLastResult})
}
