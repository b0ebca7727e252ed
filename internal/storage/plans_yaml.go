package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"fitclock/internal/core/model"
	"fitclock/internal/core/workout"
)

const plansFileName = "plans.yaml"

type yamlStep struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	RepBased bool   `yaml:"rep_based"`
	Seconds  int    `yaml:"seconds"`
	Reps     int    `yaml:"reps"`
}

type yamlPlan struct {
	Name  string     `yaml:"name"`
	Steps []yamlStep `yaml:"steps"`
}

type yamlPlansFile struct {
	Plans []yamlPlan `yaml:"plans"`
}

// LoadPlans reads workout plans from YAML.
// If the plans file does not exist, the built-in plans are returned.
func LoadPlans(appName string) ([]workout.Plan, error) {
	configPath, err := resolveConfigPath(appName, plansFileName)
	if err != nil {
		return workout.DefaultPlans(), err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return workout.DefaultPlans(), nil
		}
		return workout.DefaultPlans(), fmt.Errorf("read plans file: %w", err)
	}

	var fileData yamlPlansFile
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return workout.DefaultPlans(), fmt.Errorf("parse plans yaml: %w", err)
	}

	plans := make([]workout.Plan, 0, len(fileData.Plans))
	for planIndex, filePlan := range fileData.Plans {
		plan := normalizePlan(filePlan, planIndex)
		if len(plan.Steps) == 0 {
			continue
		}
		plans = append(plans, plan)
	}
	if len(plans) == 0 {
		return workout.DefaultPlans(), nil
	}
	return plans, nil
}

// SavePlans writes workout plans to YAML.
func SavePlans(appName string, plans []workout.Plan) error {
	configPath, err := resolveConfigPath(appName, plansFileName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlPlansFile{Plans: make([]yamlPlan, 0, len(plans))}
	for _, plan := range plans {
		filePlan := yamlPlan{Name: plan.Name, Steps: make([]yamlStep, 0, len(plan.Steps))}
		for _, step := range plan.Steps {
			filePlan.Steps = append(filePlan.Steps, yamlStep{
				ID:       step.ID,
				Name:     step.Name,
				Type:     string(step.Type),
				RepBased: step.RepBased,
				Seconds:  int(step.Duration / time.Second),
				Reps:     step.Reps,
			})
		}
		fileData.Plans = append(fileData.Plans, filePlan)
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal plans yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write plans file: %w", err)
	}

	return nil
}

func normalizePlan(filePlan yamlPlan, planIndex int) workout.Plan {
	plan := workout.Plan{Name: filePlan.Name}
	if plan.Name == "" {
		plan.Name = fmt.Sprintf("Plan %d", planIndex+1)
	}

	plan.Steps = make([]workout.Step, 0, len(filePlan.Steps))
	for stepIndex, fileStep := range filePlan.Steps {
		plan.Steps = append(plan.Steps, normalizeStep(fileStep, stepIndex))
	}
	return plan
}

func normalizeStep(fileStep yamlStep, stepIndex int) workout.Step {
	step := workout.Step{
		ID:       fileStep.ID,
		Name:     fileStep.Name,
		Type:     workout.StepType(fileStep.Type),
		RepBased: fileStep.RepBased,
		Duration: time.Duration(fileStep.Seconds) * time.Second,
		Reps:     fileStep.Reps,
	}

	if step.ID == "" {
		step.ID = fmt.Sprintf("step-%d", stepIndex+1)
	}
	if step.Name == "" {
		step.Name = step.ID
	}
	if step.Type != workout.StepRest {
		step.Type = workout.StepExercise
	}

	if step.RepBased {
		if step.Reps <= 0 {
			step.Reps = 1
		}
		step.Duration = 0
		return step
	}

	if step.Duration < model.MinInterval {
		step.Duration = model.MinInterval
	}
	step.Reps = 0
	return step
}
