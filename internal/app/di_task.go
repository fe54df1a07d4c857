package app

import (
	"fmt"

	taskHTTP "github.com/allisson/taskman/internal/task/http"
	taskRepository "github.com/allisson/taskman/internal/task/repository"
	taskUsecase "github.com/allisson/taskman/internal/task/usecase"
)

// TaskRepository returns the task repository instance.
func (c *Container) TaskRepository() (taskUsecase.TaskRepository, error) {
	c.taskRepoInit.Do(func() {
		taskRepo, err := c.initTaskRepository()
		if err != nil {
			c.initErrors["taskRepo"] = err
			return
		}
		c.taskRepo = taskRepo
	})
	if storedErr, exists := c.initErrors["taskRepo"]; exists {
		return nil, storedErr
	}
	return c.taskRepo, nil
}

// TaskUseCase returns the task use case instance.
func (c *Container) TaskUseCase() (taskUsecase.TaskUseCase, error) {
	c.taskUseCaseInit.Do(func() {
		useCase, err := c.initTaskUseCase()
		if err != nil {
			c.initErrors["taskUseCase"] = err
			return
		}
		c.taskUseCase = useCase
	})
	if storedErr, exists := c.initErrors["taskUseCase"]; exists {
		return nil, storedErr
	}
	return c.taskUseCase, nil
}

// TaskHandler returns the task HTTP handler instance.
func (c *Container) TaskHandler() (*taskHTTP.TaskHandler, error) {
	c.taskHandlerInit.Do(func() {
		useCase, err := c.TaskUseCase()
		if err != nil {
			c.initErrors["taskHandler"] = err
			return
		}
		c.taskHandler = taskHTTP.NewTaskHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["taskHandler"]; exists {
		return nil, storedErr
	}
	return c.taskHandler, nil
}

// initTaskRepository creates the task repository instance.
func (c *Container) initTaskRepository() (taskUsecase.TaskRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for task repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return taskRepository.NewMySQLTaskRepository(db), nil
	case "postgres":
		return taskRepository.NewPostgreSQLTaskRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTaskUseCase creates the task use case with all its dependencies.
func (c *Container) initTaskUseCase() (taskUsecase.TaskUseCase, error) {
	taskRepo, err := c.TaskRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get task repository for task use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for task use case: %w", err)
	}

	useCase := taskUsecase.NewTaskUseCase(taskRepo)

	return taskUsecase.NewTaskUseCaseWithMetrics(useCase, businessMetrics), nil
}
