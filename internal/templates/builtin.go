package templates

// Built-in email template names.
const (
	TemplateWelcome           = "welcome"
	TemplateVerification      = "verification"
	TemplatePasswordReset     = "passwordReset"
	TemplateProjectAssignment = "projectAssignment"
	TemplateStatusChange      = "statusChange"
	TemplateDeadlineReminder  = "deadlineReminder"
)

const welcomeTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to PlanHub</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #007bff; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 10px 20px; background: #007bff; color: white; text-decoration: none; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome to PlanHub</h1>
        </div>
        <div class="content">
            <p>Dear {{name}},</p>
            <p>Welcome to PlanHub! Your account has been created successfully.</p>
            <p>You can sign in with the following details:</p>
            <ul>
                <li>Email: {{email}}</li>
                <li>Sign in at: {{loginUrl}}</li>
            </ul>
            <p>If you have any questions, feel free to contact us.</p>
            <p>Enjoy!</p>
        </div>
    </div>
</body>
</html>`

const verificationTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Verify your email</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #28a745; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 10px 20px; background: #28a745; color: white; text-decoration: none; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Verify your email</h1>
        </div>
        <div class="content">
            <p>Hello,</p>
            <p>Please click the link below to verify your email address:</p>
            <p><a href="{{verificationUrl}}" class="button">Verify email</a></p>
            <p>If the button does not work, copy this link into your browser:</p>
            <p>{{verificationUrl}}</p>
            <p>This link expires in 24 hours.</p>
        </div>
    </div>
</body>
</html>`

const passwordResetTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Reset your password</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #dc3545; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 10px 20px; background: #dc3545; color: white; text-decoration: none; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Reset your password</h1>
        </div>
        <div class="content">
            <p>Hello,</p>
            <p>A password reset was requested for your account. Click the link below to choose a new password:</p>
            <p><a href="{{resetUrl}}" class="button">Reset password</a></p>
            <p>If the button does not work, copy this link into your browser:</p>
            <p>{{resetUrl}}</p>
            <p>This link expires in 1 hour.</p>
            <p>If you did not request a reset, you can ignore this email.</p>
        </div>
    </div>
</body>
</html>`

const projectAssignmentTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Project assignment</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #17a2b8; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .project-info { background: white; padding: 15px; margin: 15px 0; border-left: 4px solid #17a2b8; }
        .button { display: inline-block; padding: 10px 20px; background: #17a2b8; color: white; text-decoration: none; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Project assignment</h1>
        </div>
        <div class="content">
            <p>Dear {{assigneeName}},</p>
            <p>You have been assigned a new project:</p>
            <div class="project-info">
                <h3>{{projectName}}</h3>
                <p><strong>Description:</strong> {{projectDescription}}</p>
                <p><strong>Priority:</strong> {{priority}}</p>
                <p><strong>Deadline:</strong> {{deadline}}</p>
                <p><strong>Requested by:</strong> {{requesterName}}</p>
            </div>
            <p><a href="{{projectUrl}}" class="button">View project</a></p>
            <p>Please review the project details and get started.</p>
        </div>
    </div>
</body>
</html>`

const statusChangeTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Project status changed</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #ffc107; color: #212529; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .status-change { background: white; padding: 15px; margin: 15px 0; border-left: 4px solid #ffc107; }
        .button { display: inline-block; padding: 10px 20px; background: #ffc107; color: #212529; text-decoration: none; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Project status changed</h1>
        </div>
        <div class="content">
            <p>Hello,</p>
            <p>A project status has changed:</p>
            <div class="status-change">
                <h3>{{projectName}}</h3>
                <p><strong>Previous status:</strong> {{oldStatus}}</p>
                <p><strong>New status:</strong> {{newStatus}}</p>
                <p><strong>Changed by:</strong> {{changedBy}}</p>
                <p><strong>Changed at:</strong> {{changeTime}}</p>
            </div>
            <p><a href="{{projectUrl}}" class="button">View project</a></p>
        </div>
    </div>
</body>
</html>`

const deadlineReminderTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Project deadline reminder</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #fd7e14; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .reminder { background: white; padding: 15px; margin: 15px 0; border-left: 4px solid #fd7e14; }
        .urgent { border-left-color: #dc3545; }
        .button { display: inline-block; padding: 10px 20px; background: #fd7e14; color: white; text-decoration: none; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Project deadline reminder</h1>
        </div>
        <div class="content">
            <p>Dear {{userName}},</p>
            <p>The following projects are approaching their deadline:</p>
            {{#projects}}
            <div class="reminder {{#isUrgent}}urgent{{/isUrgent}}">
                <h3>{{name}}</h3>
                <p><strong>Deadline:</strong> {{deadline}}</p>
                <p><strong>Time left:</strong> {{timeLeft}}</p>
                <p><strong>Current status:</strong> {{status}}</p>
            </div>
            {{/projects}}
            <p><a href="{{dashboardUrl}}" class="button">View all projects</a></p>
            <p>Please complete the work in time to avoid delays.</p>
        </div>
    </div>
</body>
</html>`
