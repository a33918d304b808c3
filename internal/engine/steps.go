package engine

import "github.com/algebrix/algebrix/internal/equation"

// InputType is the payload shape a step expects.
type InputType string

const (
	InputNumber       InputType = "number"
	InputTwoNumbers   InputType = "two_numbers"
	InputThreeNumbers InputType = "three_numbers"
	InputText         InputType = "text"
)

// Arity returns the number of payload fields the input type takes.
func (t InputType) Arity() int {
	switch t {
	case InputTwoNumbers:
		return 2
	case InputThreeNumbers:
		return 3
	default:
		return 1
	}
}

// Step describes one position of a guided-solving sequence.
type Step struct {
	Number      int              `json:"id"`
	Key         equation.StepKey `json:"key"`
	Instruction string           `json:"instruction"`
	Input       InputType        `json:"input_type"`
	// Labels name the payload fields, in order.
	Labels []string `json:"labels"`
}

var linearSteps = []Step{
	{1, equation.StepOne, "Step 1: What is the constant term?", InputNumber, []string{"constant"}},
	{2, equation.StepTwo, "Step 2: What do you divide by?", InputNumber, []string{"coefficient"}},
	{3, equation.StepThree, "Step 3: What is the value of x?", InputNumber, []string{"x"}},
}

var quadraticSteps = []Step{
	{1, equation.StepOne, "Step 1: Identify the coefficients. What are a, b, and c?", InputThreeNumbers, []string{"a", "b", "c"}},
	{2, equation.StepTwo, "Step 2: Calculate a × c (the AC product).", InputNumber, []string{"a × c"}},
	{3, equation.StepThree, "Step 3: Find two numbers that multiply to ac AND add to b.", InputTwoNumbers, []string{"first number", "second number"}},
	{4, equation.StepFour, "Step 4: Rewrite the equation with common factors.", InputText, []string{"rewritten equation"}},
	{5, equation.StepFive, "Step 5: Rewrite the equation in factored form.", InputText, []string{"factored form"}},
	{6, equation.StepSolution, "Step 6: What are the values of x?", InputTwoNumbers, []string{"x₁", "x₂"}},
}

// quadraticProgress is the completion percentage after each quadratic step.
var quadraticProgress = []int{17, 34, 51, 68, 85, 100}

// Steps returns the ordered steps for kind. The slice must not be modified.
func Steps(kind equation.Kind) []Step {
	if kind == equation.KindQuadratic {
		return quadraticSteps
	}
	return linearSteps
}
