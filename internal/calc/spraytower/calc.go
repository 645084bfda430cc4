package spraytower

import (
	"fmt"

	"Spraytower/internal/calc/compliance"
	"Spraytower/internal/calc/droplet"
	"Spraytower/internal/calc/gas"
	"Spraytower/internal/calc/masstransfer"
	"Spraytower/internal/calc/particulate"
	"Spraytower/internal/calc/performance"
	"Spraytower/internal/calc/props"
	"Spraytower/internal/calc/sizing"
	"Spraytower/internal/calc/units"
)

type Pollutant struct {
	Type             props.PollutantType `json:"type" toml:"type"`
	InletMgNm3       float64             `json:"inlet_mg_nm3" toml:"inlet_mg_nm3"`
	TargetEfficiency float64             `json:"target_efficiency" toml:"target_efficiency"`
}

type Tower struct {
	LGRatio            float64           `json:"lg_ratio" toml:"lg_ratio"`
	LiquidDensityKgM3  float64           `json:"liquid_density_kg_m3" toml:"liquid_density_kg_m3"`
	LiquidViscosityPaS float64           `json:"liquid_viscosity_pa_s" toml:"liquid_viscosity_pa_s"`
	GasVelocityMs      float64           `json:"gas_velocity_m_s" toml:"gas_velocity_m_s"`
	DropletDiameterMM  float64           `json:"droplet_diameter_mm" toml:"droplet_diameter_mm"`
	NozzleType         *props.NozzleType `json:"nozzle_type,omitempty" toml:"nozzle_type"`
	NozzlePressureBar  float64           `json:"nozzle_pressure_bar" toml:"nozzle_pressure_bar"`
	KGaOverride        *float64          `json:"kga_override,omitempty" toml:"kga_override"`
	FrictionFactor     float64           `json:"friction_factor" toml:"friction_factor"`
	PumpHeadM          float64           `json:"pump_head_m" toml:"pump_head_m"`
	Stoichiometry      float64           `json:"stoichiometry" toml:"stoichiometry"`
	SprayHeightM       float64           `json:"spray_height_m" toml:"spray_height_m"`
}

type Settings struct {
	UnitSystem units.System    `json:"unit_system" toml:"unit_system"`
	Framework  props.Framework `json:"framework" toml:"framework"`
}

type Input struct {
	Gas       gas.Input `json:"gas_stream" toml:"gas_stream"`
	Pollutant Pollutant `json:"pollutant" toml:"pollutant"`
	Tower     Tower     `json:"tower" toml:"tower"`
	Settings  Settings  `json:"settings" toml:"settings"`
}

type Result struct {
	UnitSystem   units.System        `json:"unit_system"`
	Units        map[string]string   `json:"units"`
	Gas          gas.Result          `json:"gas"`
	Sizing       sizing.Result       `json:"sizing"`
	Droplet      droplet.Result      `json:"droplet"`
	MassTransfer masstransfer.Result `json:"mass_transfer"`
	Particulate  particulate.Result  `json:"particulate"`
	Performance  performance.Result  `json:"performance"`
	Compliance   compliance.Result   `json:"compliance"`
	Warnings     []string            `json:"warnings,omitempty"`
}

// Calculator runs the spray-tower pipeline against one property library.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	lib      props.Library
	defaults Settings
}

func New(lib props.Library) *Calculator {
	return &Calculator{lib: lib}
}

// WithDefaults returns a copy of c that fills empty input settings from s
// before the built-in defaults apply.
func (c *Calculator) WithDefaults(s Settings) *Calculator {
	cp := *c
	cp.defaults = s
	return &cp
}

func (c *Calculator) Library() props.Library {
	return c.lib
}

// Evaluate runs the pipeline with the built-in property tables.
func Evaluate(in Input) (Result, error) {
	return New(props.Default()).Calculate(in)
}

func withDefaults(in Input) Input {
	if in.Tower.LiquidDensityKgM3 <= 0 {
		in.Tower.LiquidDensityKgM3 = 1000
	}
	if in.Tower.LiquidViscosityPaS <= 0 {
		in.Tower.LiquidViscosityPaS = 1.0e-3
	}
	if in.Tower.FrictionFactor <= 0 {
		in.Tower.FrictionFactor = 0.02
	}
	if in.Tower.Stoichiometry <= 0 {
		in.Tower.Stoichiometry = 1.0
	}
	if in.Tower.SprayHeightM <= 0 {
		in.Tower.SprayHeightM = props.DefaultSprayHeightM
	}
	if in.Settings.UnitSystem == "" {
		in.Settings.UnitSystem = units.Metric
	}
	if in.Settings.Framework == "" {
		in.Settings.Framework = props.FrameworkEU
	}
	return in
}

// Calculate evaluates one design. Numerically degenerate designs (zero KGa,
// droplets carried up with the gas, ...) still produce a result, with the
// affected fields at 0 and a warning; only structural errors are returned.
func (c *Calculator) Calculate(in Input) (Result, error) {
	if in.Settings.UnitSystem == "" {
		in.Settings.UnitSystem = c.defaults.UnitSystem
	}
	if in.Settings.Framework == "" {
		in.Settings.Framework = c.defaults.Framework
	}
	in = withDefaults(in)

	pollutant, err := c.lib.Pollutant(in.Pollutant.Type)
	if err != nil {
		return Result{}, err
	}
	if _, err := props.ParseFramework(string(in.Settings.Framework)); err != nil {
		return Result{}, err
	}
	system, err := units.ParseSystem(string(in.Settings.UnitSystem))
	if err != nil {
		return Result{}, err
	}
	var nozzle *props.Nozzle
	if in.Tower.NozzleType != nil {
		n, err := c.lib.Nozzle(*in.Tower.NozzleType)
		if err != nil {
			return Result{}, err
		}
		nozzle = &n
	}

	g := gas.Calculate(in.Gas)

	sz, err := sizing.Calculate(g.FlowM3s, in.Tower.GasVelocityMs, in.Tower.LGRatio)
	if err != nil {
		return Result{}, fmt.Errorf("tower sizing: %w", err)
	}

	dr := droplet.Solve(droplet.Input{
		DiameterMM:        in.Tower.DropletDiameterMM,
		GasVelocityMs:     in.Tower.GasVelocityMs,
		GasDensityKgM3:    g.DensityKgM3,
		GasViscosityPaS:   g.ViscosityPaS,
		LiquidDensityKgM3: in.Tower.LiquidDensityKgM3,
		SprayHeightM:      in.Tower.SprayHeightM,
	})

	mt := masstransfer.Calculate(masstransfer.Input{
		Pollutant:          pollutant,
		DropletDiameterMM:  in.Tower.DropletDiameterMM,
		GasDensityKgM3:     g.DensityKgM3,
		GasViscosityPaS:    g.ViscosityPaS,
		GasVelocityMs:      in.Tower.GasVelocityMs,
		RelativeVelocityMs: dr.RelativeVelocityMs,
		LiquidFluxM3M2:     sz.LiquidFluxM3M2,
		KGaOverride:        in.Tower.KGaOverride,
	})

	pm := particulate.Estimate(particulate.Input{
		DropletDiameterMM:  in.Tower.DropletDiameterMM,
		GasVelocityMs:      in.Tower.GasVelocityMs,
		LiquidFluxM3M2:     sz.LiquidFluxM3M2,
		SprayHeightM:       in.Tower.SprayHeightM,
		RelativeVelocityMs: dr.RelativeVelocityMs,
	})

	perf := performance.Calculate(performance.Input{
		Pollutant:         pollutant,
		InletMgNm3:        in.Pollutant.InletMgNm3,
		TargetEfficiency:  in.Pollutant.TargetEfficiency,
		FrictionFactor:    in.Tower.FrictionFactor,
		Stoichiometry:     in.Tower.Stoichiometry,
		LiquidDensityKgM3: in.Tower.LiquidDensityKgM3,
		PumpHeadM:         in.Tower.PumpHeadM,
		Nozzle:            nozzle,
		NozzlePressureBar: in.Tower.NozzlePressureBar,
		StdFlowNm3h:       in.Gas.FlowNm3h,
		GasFlowM3s:        g.FlowM3s,
		GasVelocityMs:     in.Tower.GasVelocityMs,
		GasDensityKgM3:    g.DensityKgM3,
		TemperatureK:      g.TemperatureK,
		PressurePa:        g.PressurePa,
		DiameterM:         sz.DiameterM,
		AreaM2:            sz.AreaM2,
		LiquidM3s:         sz.LiquidM3s,
		KGaPerS:           mt.KGaPerS,
	})

	comp := compliance.Evaluate(c.lib, in.Settings.Framework, perf.OutletMgNm3, g.PressurePa, in.Pollutant.Type)

	warnings := append([]string(nil), dr.Warnings...)
	if !dr.Converged && dr.Iterations > 0 {
		warnings = append(warnings, fmt.Sprintf("droplet terminal velocity did not converge in %d iterations", dr.Iterations))
	}
	warnings = append(warnings, mt.Warnings...)
	warnings = append(warnings, perf.Warnings...)

	res := Result{
		UnitSystem:   units.Metric,
		Gas:          g,
		Sizing:       sz,
		Droplet:      dr,
		MassTransfer: mt,
		Particulate:  pm,
		Performance:  perf,
		Compliance:   comp,
		Warnings:     warnings,
	}
	return Project(res, system), nil
}
