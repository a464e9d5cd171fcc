package email

// passwordResetTemplate is the fixed HTML body for password reset mails.
// The two placeholders are substituted in renderPasswordReset; nothing else
// in the template is dynamic.
const passwordResetTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Reset Your Password</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(to right, #4CAF50, #45a049); padding: 20px; text-align: center;">
    <h1 style="color: white; margin: 0;">Password Reset</h1>
  </div>
  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 0 0 5px 5px; box-shadow: 0 2px 5px rgba(0, 0, 0, 0.1);">
    <p>Hi {username},</p>
    <p>We received a request to reset the password on your Azir E-commerce account.</p>
    <div style="text-align: center; margin: 30px 0;">
      <span style="font-size: 32px; font-weight: bold; letter-spacing: 6px; color: #4CAF50;">{resetCode}</span>
    </div>
    <p>Enter this code to complete the reset. The code is valid for 10 minutes.</p>
    <p>If you did not request a password reset, please ignore this email.</p>
    <p>Thanks,<br>The Azir E-commerce Team</p>
  </div>
  <div style="text-align: center; margin-top: 20px; color: #888; font-size: 0.8em;">
    <p>This is an automated message, please do not reply.</p>
  </div>
</body>
</html>`
