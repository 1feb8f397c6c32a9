package cli

const (
	ruleWidth = 80
	title     = "         CONCERT ITINERARY BUILDER - TEST-DRIVEN DEVELOPMENT EXPERIMENT"
)

const menuText = `MENU:
1. Run tests and view results
2. View current code coverage
3. View experiment progress
4. Record time for a task
5. View system requirements
6. View sample itinerary
7. Exit
`

const tddOverview = `
TEST-DRIVEN DEVELOPMENT (TDD) OVERVIEW
%s
This experiment uses Test-Driven Development (TDD), a software development approach where you:
1. RED PHASE: Write a failing test that defines a desired function or improvement
2. GREEN PHASE: Write the simplest code to make the test pass
3. REFACTOR PHASE: Clean up the code while ensuring tests still pass

This 'Red-Green-Refactor' cycle is repeated for each feature or requirement.
The key principle is to write tests before writing implementation code.
During this experiment, you'll go through this cycle both manually and with
AI assistance to explore how these approaches differ.

`

const instructions = `
EXPERIMENT INSTRUCTIONS
%s
You will complete the following steps:

PART 1: MANUAL TDD CYCLE
  1. RED PHASE:
     - Write %[2]s test cases for your manual constraints
     - Run tests to confirm they fail
     - Record time spent

  2. GREEN PHASE:
     - Implement code to make your manual tests pass
     - Run tests to confirm they pass
     - Record time spent

  3. REFACTOR PHASE:
     - Improve your implementation while keeping tests passing
     - Record time spent

PART 2: AI-ASSISTED TDD CYCLE
  1. RED PHASE:
     - Use AI to help write %[3]s test cases for your AI-assigned constraints
     - Run tests to confirm they fail
     - Record time spent

  2. GREEN PHASE:
     - Extend implementation to make AI-assisted tests pass
     - Run tests to confirm they pass
     - Record time spent

  3. REFACTOR PHASE:
     - Improve your implementation while keeping tests passing
     - Record time spent

`

const userStory = `User Story:
  As a user, I want to build an itinerary of upcoming concerts of my favorite
  artists so that I can attend the concerts.
`

const tddCycle = `
Test-Driven Development Process:
  1. RED: Write a failing test
  2. GREEN: Write code to make the test pass
  3. REFACTOR: Improve your code while keeping tests passing
`

// Task kinds offered when recording time. The last menu entry asks for a
// custom name.
var taskNames = []string{
	"Manual test writing (RED phase)",
	"Manual implementation (GREEN phase)",
	"Manual refactoring (REFACTOR phase)",
	"AI-assisted test writing (RED phase)",
	"AI-assisted implementation (GREEN phase)",
	"AI-assisted refactoring (REFACTOR phase)",
}
