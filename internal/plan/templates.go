package plan

import "github.com/claude/fitmyself/internal/models"

type workoutTemplate struct {
	name      string
	exercises []models.Exercise
	fitcoins  int
}

var workoutTemplates = map[models.Goal]workoutTemplate{
	models.GoalMuscleGain: {
		name: "Muscle Building Workout",
		exercises: []models.Exercise{
			{Name: "Push-ups", Sets: 3, Reps: "12-15", RestTime: "60s"},
			{Name: "Squats", Sets: 3, Reps: "15-20", RestTime: "60s"},
			{Name: "Dumbbell Rows", Sets: 3, Reps: "10-12", RestTime: "90s"},
			{Name: "Plank", Sets: 3, Reps: "30-45s", RestTime: "60s"},
			{Name: "Lunges", Sets: 3, Reps: "12 each leg", RestTime: "60s"},
		},
		fitcoins: 150,
	},
	models.GoalStrengthGain: {
		name: "Strength Training",
		exercises: []models.Exercise{
			{Name: "Deadlifts", Sets: 4, Reps: "6-8", RestTime: "2-3min"},
			{Name: "Bench Press", Sets: 4, Reps: "6-8", RestTime: "2-3min"},
			{Name: "Squats", Sets: 4, Reps: "8-10", RestTime: "2-3min"},
			{Name: "Overhead Press", Sets: 3, Reps: "8-10", RestTime: "2min"},
			{Name: "Pull-ups", Sets: 3, Reps: "5-8", RestTime: "2min"},
		},
		fitcoins: 200,
	},
	models.GoalStaminaGain: {
		name: "Cardio & Endurance",
		exercises: []models.Exercise{
			{Name: "Jumping Jacks", Sets: 3, Reps: "30s", RestTime: "30s"},
			{Name: "High Knees", Sets: 3, Reps: "30s", RestTime: "30s"},
			{Name: "Burpees", Sets: 3, Reps: "8-10", RestTime: "60s"},
			{Name: "Mountain Climbers", Sets: 3, Reps: "30s", RestTime: "30s"},
			{Name: "Running in Place", Sets: 3, Reps: "45s", RestTime: "30s"},
		},
		fitcoins: 120,
	},
	models.GoalFatLoss: {
		name: "Fat Burning Circuit",
		exercises: []models.Exercise{
			{Name: "Burpees", Sets: 4, Reps: "10-12", RestTime: "45s"},
			{Name: "Jump Squats", Sets: 4, Reps: "15-20", RestTime: "45s"},
			{Name: "Push-ups", Sets: 3, Reps: "12-15", RestTime: "45s"},
			{Name: "Plank Jacks", Sets: 3, Reps: "15-20", RestTime: "45s"},
			{Name: "Bicycle Crunches", Sets: 3, Reps: "20 each side", RestTime: "45s"},
		},
		fitcoins: 180,
	},
}

var dietTemplates = map[models.Goal][]models.Meal{
	models.GoalMuscleGain: {
		{Name: "Protein Power Breakfast", Time: "7:00 AM",
			Foods:    []string{"Scrambled eggs", "Whole grain toast", "Greek yogurt", "Banana"},
			Calories: 450},
		{Name: "Pre-Workout Snack", Time: "10:00 AM",
			Foods:    []string{"Protein shake", "Apple slices", "Almonds"},
			Calories: 280},
		{Name: "Muscle Building Lunch", Time: "1:00 PM",
			Foods:    []string{"Grilled chicken breast", "Brown rice", "Steamed broccoli", "Avocado"},
			Calories: 520},
		{Name: "Post-Workout Dinner", Time: "7:00 PM",
			Foods:    []string{"Lean beef", "Sweet potato", "Green salad", "Quinoa"},
			Calories: 480},
	},
	models.GoalStrengthGain: {
		{Name: "High-Protein Breakfast", Time: "7:00 AM",
			Foods:    []string{"Oatmeal with protein powder", "Berries", "Nuts", "Milk"},
			Calories: 420},
		{Name: "Mid-Morning Fuel", Time: "10:30 AM",
			Foods:    []string{"Greek yogurt", "Granola", "Honey"},
			Calories: 250},
		{Name: "Power Lunch", Time: "1:00 PM",
			Foods:    []string{"Salmon fillet", "Quinoa", "Roasted vegetables", "Olive oil"},
			Calories: 550},
		{Name: "Recovery Dinner", Time: "7:30 PM",
			Foods:    []string{"Turkey breast", "Brown rice", "Steamed spinach", "Chickpeas"},
			Calories: 460},
	},
	models.GoalStaminaGain: {
		{Name: "Energy Breakfast", Time: "6:30 AM",
			Foods:    []string{"Whole grain cereal", "Banana", "Low-fat milk", "Berries"},
			Calories: 350},
		{Name: "Pre-Workout Boost", Time: "10:00 AM",
			Foods:    []string{"Energy bar", "Orange juice", "Dates"},
			Calories: 200},
		{Name: "Endurance Lunch", Time: "12:30 PM",
			Foods:    []string{"Pasta with lean meat", "Tomato sauce", "Green salad", "Whole grain bread"},
			Calories: 480},
		{Name: "Recovery Dinner", Time: "7:00 PM",
			Foods:    []string{"Grilled fish", "Sweet potato", "Steamed vegetables", "Brown rice"},
			Calories: 430},
	},
	models.GoalFatLoss: {
		{Name: "Lean Start", Time: "7:30 AM",
			Foods:    []string{"Egg whites", "Spinach", "Whole grain toast", "Grapefruit"},
			Calories: 280},
		{Name: "Healthy Snack", Time: "10:30 AM",
			Foods:    []string{"Apple", "Almonds", "Green tea"},
			Calories: 150},
		{Name: "Light Lunch", Time: "1:00 PM",
			Foods:    []string{"Grilled chicken salad", "Mixed greens", "Cucumber", "Olive oil dressing"},
			Calories: 320},
		{Name: "Balanced Dinner", Time: "6:30 PM",
			Foods:    []string{"Grilled fish", "Steamed broccoli", "Cauliflower rice", "Lemon"},
			Calories: 280},
	},
}
