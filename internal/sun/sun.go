// Package sun computes civil dawn, sunrise, sunset and dusk times using a
// closed-form NOAA-style solar position approximation.
package sun

import (
	"errors"
	"math"
	"time"
)

// ErrNeverRises is returned when the sun never reaches the requested
// altitude on the given date at the given latitude (polar night).
var ErrNeverRises = errors.New("sun: never rises to requested altitude on this date")

// ErrNeverSets is returned when the sun never drops below the requested
// altitude on the given date at the given latitude (midnight sun).
var ErrNeverSets = errors.New("sun: never sets below requested altitude on this date")

// civil dawn/dusk occur when the sun is 6 degrees below the horizon.
const civilTwilightAltitude = -6.0
const horizonAltitude = -0.833 // standard atmospheric refraction correction

// Times holds the four event offsets from local midnight, on a date.
type Times struct {
	Dawn    time.Duration
	Sunrise time.Duration
	Sunset  time.Duration
	Dusk    time.Duration
}

// Compute returns dawn/sunrise/sunset/dusk as offsets from local midnight of
// date, for the given latitude/longitude in degrees. date's own time-of-day
// is ignored; only its calendar date and location matter.
func Compute(date time.Time, lat, lon float64) (Times, error) {
	morningSunrise, eveningSunrise, err := eventPair(date, lat, lon, horizonAltitude)
	if err != nil {
		return Times{}, err
	}

	dawn, dusk, err := eventPair(date, lat, lon, civilTwilightAltitude)
	if err != nil {
		return Times{}, err
	}

	return Times{
		Dawn:    dawn,
		Sunrise: morningSunrise,
		Sunset:  eveningSunrise,
		Dusk:    dusk,
	}, nil
}

// eventPair returns the two daily crossings (rising, setting) of the given
// target altitude, as offsets from local midnight.
func eventPair(date time.Time, lat, lon, targetAltitude float64) (rising, setting time.Duration, err error) {
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
	jd := julianDay(noon)

	declination, eqTimeMinutes := solarPosition(jd)

	latRad := deg2rad(lat)
	declRad := deg2rad(declination)
	targetRad := deg2rad(targetAltitude)

	cosHourAngle := (math.Sin(targetRad) - math.Sin(latRad)*math.Sin(declRad)) /
		(math.Cos(latRad) * math.Cos(declRad))

	if cosHourAngle > 1 {
		return 0, 0, ErrNeverRises
	}
	if cosHourAngle < -1 {
		return 0, 0, ErrNeverSets
	}

	hourAngleDeg := rad2deg(math.Acos(cosHourAngle))

	// Solar noon in minutes from UTC midnight, then converted to the local
	// offset by the zone's offset from UTC at the given date.
	_, offsetSec := date.Zone()
	offsetMinutes := float64(offsetSec) / 60.0

	solarNoonMinutes := 720 - 4*lon - eqTimeMinutes + offsetMinutes
	riseMinutes := solarNoonMinutes - 4*hourAngleDeg
	setMinutes := solarNoonMinutes + 4*hourAngleDeg

	rising = minutesToDuration(riseMinutes)
	setting = minutesToDuration(setMinutes)
	return rising, setting, nil
}

func minutesToDuration(m float64) time.Duration {
	// Wrap into [0, 24h) relative to local midnight.
	d := time.Duration(m*60) * time.Second
	day := 24 * time.Hour
	d %= day
	if d < 0 {
		d += day
	}
	return d
}

// julianDay returns the Julian date for the given instant (assumed local,
// converted to UTC internally).
func julianDay(t time.Time) float64 {
	utc := t.UTC()
	a := float64(14-int(utc.Month())) / 12
	if a < 0 {
		a = math.Floor(a)
	} else {
		a = math.Trunc(a)
	}
	y := float64(utc.Year()) + 4800 - a
	m := float64(utc.Month()) + 12*a - 3

	jdn := float64(utc.Day()) + math.Floor((153*m+2)/5) + 365*y +
		math.Floor(y/4) - math.Floor(y/100) + math.Floor(y/400) - 32045

	dayFraction := (float64(utc.Hour())-12)/24 + float64(utc.Minute())/1440 + float64(utc.Second())/86400
	return jdn + dayFraction
}

// solarPosition returns the sun's declination (degrees) and the equation of
// time (minutes) for the given Julian date, via the NOAA approximation
// (Julian centuries -> mean anomaly -> equation of center -> ecliptic
// longitude -> obliquity -> declination).
func solarPosition(jd float64) (declinationDeg, eqTimeMinutes float64) {
	jc := (jd - 2451545.0) / 36525.0

	geomMeanLongSun := math.Mod(280.46646+jc*(36000.76983+jc*0.0003032), 360)
	geomMeanAnomSun := 357.52911 + jc*(35999.05029-0.0001537*jc)
	eccentEarthOrbit := 0.016708634 - jc*(0.000042037+0.0000001267*jc)

	meanAnomRad := deg2rad(geomMeanAnomSun)

	sunEqOfCenter := math.Sin(meanAnomRad)*(1.914602-jc*(0.004817+0.000014*jc)) +
		math.Sin(2*meanAnomRad)*(0.019993-0.000101*jc) +
		math.Sin(3*meanAnomRad)*0.000289

	sunTrueLong := geomMeanLongSun + sunEqOfCenter
	sunAppLong := sunTrueLong - 0.00569 - 0.00478*math.Sin(deg2rad(125.04-1934.136*jc))

	meanObliqEcliptic := 23 + (26+(21.448-jc*(46.815+jc*(0.00059-jc*0.001813)))/60)/60
	obliqCorr := meanObliqEcliptic + 0.00256*math.Cos(deg2rad(125.04-1934.136*jc))

	declinationDeg = rad2deg(math.Asin(math.Sin(deg2rad(obliqCorr)) * math.Sin(deg2rad(sunAppLong))))

	y := math.Tan(deg2rad(obliqCorr/2)) * math.Tan(deg2rad(obliqCorr/2))

	eqTime := y*math.Sin(2*deg2rad(geomMeanLongSun)) -
		2*eccentEarthOrbit*math.Sin(meanAnomRad) +
		4*eccentEarthOrbit*y*math.Sin(meanAnomRad)*math.Cos(2*deg2rad(geomMeanLongSun)) -
		0.5*y*y*math.Sin(4*deg2rad(geomMeanLongSun)) -
		1.25*eccentEarthOrbit*eccentEarthOrbit*math.Sin(2*meanAnomRad)

	eqTimeMinutes = 4 * rad2deg(eqTime)
	return declinationDeg, eqTimeMinutes
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }
